/*
Package cmd implements the command-line interface for gtalk. It provides
the interactive query loop, a single-shot query command, and a chat-style
terminal UI.
*/
package cmd

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

/*
Embed a mini filesystem into the binary to hold the default config file.
This will be written to the home directory of the user running the tool,
which allows easy overrides of the page heuristics without rebuilding.
*/
//go:embed cfg/*
var embedded embed.FS

var (
	projectName = "gtalk"
	cfgFile     string
	verboseFlag bool

	rootCmd = &cobra.Command{
		Use:   "gtalk [query]",
		Short: "Query Google AI Mode from the terminal",
		Long:  longRoot,
		Args:  cobra.MaximumNArgs(1),
		// Query failures are reported with their own guidance; cobra
		// should not pile usage text on top.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runOnce(cmd.Context(), args[0])
			}
			return runInteractive(cmd.Context())
		},
	}
)

/*
Execute is the main entry point for the gtalk CLI. Interrupt signals cancel
the command context, which tears down the browser session on the way out.
*/
func Execute() error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yml",
		"config file (default is $HOME/."+projectName+"/config.yml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verboseFlag,
		"verbose",
		"v",
		false,
		"enable debug logging",
	)
}

/*
initConfig writes the default config file to the user's home directory if it
doesn't exist, then reads it.
*/
func initConfig() {
	log.SetLevel(log.WarnLevel)
	if verboseFlag {
		log.SetLevel(log.DebugLevel)
		log.SetReportCaller(true)
	}

	if err := writeConfig(); err != nil {
		log.Fatal("could not write default config", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	home, _ := os.UserHomeDir()
	viper.AddConfigPath(home + "/." + projectName)

	if err := viper.ReadInConfig(); err != nil {
		log.Fatal("could not read config", "error", err)
	}
}

/*
writeConfig writes the default config file to the user's home directory.
*/
func writeConfig() (err error) {
	var (
		home, _ = os.UserHomeDir()
		fh      fs.File
		buf     bytes.Buffer
	)

	configDir := home + "/." + projectName
	if !checkFileExists(configDir) {
		if err = os.MkdirAll(configDir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	for _, file := range []string{cfgFile} {
		fullPath := configDir + "/" + file

		if checkFileExists(fullPath) {
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

		log.Debug("wrote config file", "path", fullPath)
		buf.Reset()
		fh.Close()
	}

	return nil
}

func checkFileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !errors.Is(err, os.ErrNotExist)
}

var longRoot = `
gtalk submits queries to Google's AI Mode through a headless browser and
prints the AI-generated answer, including any code blocks, to the terminal.

With no arguments it starts an interactive loop that reuses one browser
session across queries. With a single argument it answers that query and
exits.

Examples:
  # Interactive mode
  gtalk

  # Single query
  gtalk "What is the capital of France?"
`
