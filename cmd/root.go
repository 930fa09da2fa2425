/*
Package cmd implements the command-line interface for the conductor.
It provides commands for running directives against a fleet of remote
agents and for inspecting the discovered agent roster.
*/
package cmd

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

/*
Embed a mini filesystem into the binary to hold the default config file.
This will be written to the home directory of the user running the service,
which allows a developer to easily override the config file.
*/
//go:embed cfg/*
var embedded embed.FS

/*
rootCmd represents the base command when called without any subcommands
*/
var (
	projectName     = "conductor-go"
	cfgFile         string
	anthropicAPIKey string
	openaiAPIKey    string

	rootCmd = &cobra.Command{
		Use:   "conductor",
		Short: "An LLM conductor for Agent-to-Agent (A2A) task orchestration",
		Long:  longRoot,
	}
)

/*
Execute is the main entry point for the conductor CLI. It initializes the
root command and executes it.
*/
func Execute() error {
	return rootCmd.Execute()
}

/*
init is a function that initializes the root command and sets up the persistent flags.
*/
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yml",
		"config file (default is $HOME/."+projectName+"/config.yml)",
	)

	rootCmd.PersistentFlags().StringVar(
		&anthropicAPIKey,
		"anthropic-api-key",
		os.Getenv("ANTHROPIC_API_KEY"),
		"API key for the Anthropic provider",
	)

	rootCmd.PersistentFlags().StringVar(
		&openaiAPIKey,
		"openai-api-key",
		os.Getenv("OPENAI_API_KEY"),
		"API key for the OpenAI provider",
	)
}

/*
initConfig is a function that initializes the configuration for the conductor CLI.
It writes the default config file to the user's home directory if it doesn't exist,
and then reads the config file from the user's home directory.
*/
func initConfig() {
	var err error

	if err = writeConfig(); err != nil {
		log.Fatal(err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	home, _ := os.UserHomeDir()
	viper.AddConfigPath(home + "/." + projectName)

	if err = viper.ReadInConfig(); err != nil {
		log.Fatal(err)
		return
	}

	if anthropicAPIKey != "" {
		_ = os.Setenv("ANTHROPIC_API_KEY", anthropicAPIKey)
	}

	if openaiAPIKey != "" {
		_ = os.Setenv("OPENAI_API_KEY", openaiAPIKey)
	}
}

/*
writeConfig is a function that writes the default config file to the user's home directory.
*/
func writeConfig() (err error) {
	var (
		home, _ = os.UserHomeDir()
		fh      fs.File
		buf     bytes.Buffer
	)

	configDir := home + "/." + projectName
	if !CheckFileExists(configDir) {
		if err = os.MkdirAll(configDir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	for _, file := range []string{cfgFile} {
		fullPath := configDir + "/" + file

		if CheckFileExists(fullPath) {
			continue
		}

		if fh, err = embedded.Open("cfg/" + file); err != nil {
			return fmt.Errorf("failed to open embedded config file: %w", err)
		}

		if _, err = io.Copy(&buf, fh); err != nil {
			fh.Close()
			return fmt.Errorf("failed to read embedded config file: %w", err)
		}

		if err = os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			fh.Close()
			return fmt.Errorf("failed to write config file: %w", err)
		}

		log.Println("wrote config file to", fullPath)
		buf.Reset()
		fh.Close()
	}

	return nil
}

func CheckFileExists(filePath string) bool {
	_, error := os.Stat(filePath)
	return !errors.Is(error, os.ErrNotExist)
}

/*
longRoot contains the detailed help text for the root command.
*/
var longRoot = `
conductor is an LLM-driven orchestrator for fleets of remote agents speaking
the Agent-to-Agent (A2A) task protocol. It discovers agents from their
descriptor cards, delegates work to them over JSON-RPC, and coordinates the
results through a turn-based execution loop.
`
