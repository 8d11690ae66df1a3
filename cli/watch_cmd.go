package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nox-hq/codeguard/internal/config"
	"github.com/nox-hq/codeguard/internal/scan"
)

// runWatch implements the "codeguard watch" command: re-run a scan whenever
// a file under target changes, debounced so a burst of edits triggers only
// one re-scan.
func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	var (
		debounce   time.Duration
		repository string
	)
	fs.DurationVar(&debounce, "debounce", 500*time.Millisecond, "debounce interval for file changes")
	fs.StringVar(&repository, "repository", "", "repository identifier for policy resolution (owner/repo)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	target := "."
	if fs.NArg() > 0 {
		target = fs.Arg(0)
	}
	if repository == "" {
		repository = target
	}

	cfg, err := config.Load(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading .codeguard.yaml: %v\n", err)
		return 2
	}
	scanner, _, _ := buildScanner(cfg)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: creating watcher: %v\n", err)
		return 2
	}
	defer watcher.Close()

	if err := addDirsRecursive(watcher, target); err != nil {
		fmt.Fprintf(os.Stderr, "error: watching directories: %v\n", err)
		return 2
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("watch: scanning %s (debounce: %s)\n", target, debounce)
	printScanResults(scanner, target, repository)

	var mu sync.Mutex
	var timer *time.Timer

	resetTimer := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, func() {
			fmt.Print("\033[2J\033[H")
			fmt.Printf("watch: re-scanning %s\n", target)
			printScanResults(scanner, target, repository)
		})
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return 0
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = addDirsRecursive(watcher, event.Name)
					}
				}
				resetTimer()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return 0
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-sigCh:
			fmt.Println("\nwatch: stopped")
			return 0
		}
	}
}

func printScanResults(scanner *scan.Scanner, target, repository string) {
	result, _, err := scanTarget(context.Background(), scanner, target, repository, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: scan failed: %v\n", err)
		return
	}

	fmt.Printf("[results] %d violation(s) across %d files — %s\n",
		result.Summary.TotalViolations, result.Summary.FilesAffected, result.EnforcementAction)
	for sev, count := range result.Summary.BySeverity {
		fmt.Printf("  %s: %d\n", sev, count)
	}
}

func addDirsRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if base == ".git" || base == "node_modules" || base == ".codeguard" {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
