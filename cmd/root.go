/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gondg",
	Short: "Nodal discontinuous Galerkin solvers for advection and Maxwell's equations",
	Long: `
Runs the nodal discontinuous Galerkin model problems in one and two dimensions,

gondg 1D -m 1 -n 6 -k 40
gondg 2D -n 4 -k 8 --graph`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gondg.yaml)")
	rootCmd.PersistentFlags().String("profile", "", "write a profile of the run to the current directory: cpu or mem")
	rootCmd.PersistentFlags().Bool("perf", false, "report the CPU instructions used by the run (linux)")
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("perf", rootCmd.PersistentFlags().Lookup("perf"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Search config in home directory with name ".gondg" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".gondg")
	}
	viper.SetEnvPrefix("gondg")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// runMeasured wraps a model run with the profiler and instruction counter
// selected on the command line.
func runMeasured(run func()) {
	switch viper.GetString("profile") {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	case "":
	default:
		fmt.Printf("unknown profile type %q, running without a profile\n", viper.GetString("profile"))
	}
	if !viper.GetBool("perf") {
		run()
		return
	}
	instructions, err := countInstructions(run)
	if err != nil {
		fmt.Printf("unable to count CPU instructions: %s\n", err)
		return
	}
	fmt.Printf("CPU instructions used: %d\n", instructions)
}
