// Command ptysh is a thin interactive front end over the shell executor:
// a readline prompt that feeds commands to one persistent session.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"ptysh/internal/config"
	"ptysh/internal/logging"
	"ptysh/internal/shell"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ptysh:", err)
		os.Exit(1)
	}

	level, ok := logging.ParseLevel(cfg.LogLevel)
	if !ok {
		level = logging.LevelInfo
	}
	logger := logging.New(os.Stderr, level)

	executor, err := shell.NewExecutor(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ptysh:", err)
		os.Exit(1)
	}

	if err := run(executor); err != nil {
		fmt.Fprintln(os.Stderr, "ptysh:", err)
		os.Exit(1)
	}
}

func run(executor *shell.Executor) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt(executor),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	// Ctrl+C in cooked mode arrives here as SIGINT and is forwarded to the
	// running command's process group. In raw mode the relay passes the byte
	// straight to the child instead.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupts)
	go func() {
		for range interrupts {
			executor.Interrupt()
		}
	}()

	stdoutTTY := term.IsTerminal(int(os.Stdout.Fd()))

	for {
		rl.SetPrompt(prompt(executor))
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		command := strings.TrimSpace(line)
		switch command {
		case "":
			continue
		case "exit", "quit":
			return nil
		case ":history":
			for _, entry := range executor.History() {
				fmt.Println(entry)
			}
			continue
		case ":reset":
			executor.Reset()
			continue
		}

		output := executor.Execute(command)
		if output == "" {
			continue
		}
		// On a terminal the command's output was already streamed live;
		// only print results that never reached the screen.
		if !stdoutTTY || strings.TrimSpace(executor.LastOutput()) == "" {
			fmt.Println(output)
		}
	}
}

func prompt(executor *shell.Executor) string {
	return filepath.Base(executor.CurrentDirectory()) + " $ "
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ptysh", "config.yaml")
}
