package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/freshtechbro/skillstack/pkg/logger"
	"github.com/freshtechbro/skillstack/pkg/presenter"
	"github.com/freshtechbro/skillstack/pkg/skills"
	"github.com/freshtechbro/skillstack/pkg/validate"
)

// WatchConfig holds configuration for the watch command
type WatchConfig struct {
	Dirs         []string
	IgnoreDirs   []string
	DebounceTime int
}

// NewWatchConfig creates a WatchConfig with default values
func NewWatchConfig() *WatchConfig {
	return &WatchConfig{
		IgnoreDirs:   []string{".git", "node_modules"},
		DebounceTime: 500,
	}
}

// Validate checks the WatchConfig
func (c *WatchConfig) Validate() error {
	if c.DebounceTime < 0 {
		return errors.Errorf("debounce time cannot be negative: %d", c.DebounceTime)
	}
	return nil
}

// FileEvent is a file system event with its arrival time
type FileEvent struct {
	Path string
	Op   fsnotify.Op
	Time time.Time
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Revalidate skills whenever their files change",
	Long: `Continuously watch the skill directories and revalidate a skill
whenever one of its files is written or created.

By default, watches the default skill directories (.claude/skills/
then skills/). Stop with Ctrl-C.

Examples:
  skillstack watch
  skillstack watch --dir skills/ --debounce 1000`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		config := getWatchConfigFromFlags(cmd)
		if err := config.Validate(); err != nil {
			return err
		}

		if len(config.Dirs) == 0 {
			dirs, err := discoverSkillDirs()
			if err != nil {
				return err
			}
			config.Dirs = dirs
		}
		if len(config.Dirs) == 0 {
			return errors.New("no skill directories to watch")
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			presenter.Warning("Shutting down...")
			cancel()
		}()

		return runWatchMode(ctx, config)
	},
}

func init() {
	defaults := NewWatchConfig()
	watchCmd.Flags().StringSlice("dir", nil, "Skill directories to watch (defaults to discovered skills)")
	watchCmd.Flags().StringSliceP("ignore", "i", defaults.IgnoreDirs, "Directories to ignore")
	watchCmd.Flags().IntP("debounce", "d", defaults.DebounceTime, "Debounce time in milliseconds for file change events")
}

// getWatchConfigFromFlags extracts watch configuration from command flags
func getWatchConfigFromFlags(cmd *cobra.Command) *WatchConfig {
	config := NewWatchConfig()

	if dirs, err := cmd.Flags().GetStringSlice("dir"); err == nil {
		config.Dirs = dirs
	}
	if ignoreDirs, err := cmd.Flags().GetStringSlice("ignore"); err == nil {
		config.IgnoreDirs = ignoreDirs
	}
	if debounceTime, err := cmd.Flags().GetInt("debounce"); err == nil {
		config.DebounceTime = debounceTime
	}

	return config
}

func runWatchMode(ctx context.Context, config *WatchConfig) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	events := make(chan FileEvent)
	debouncedEvents := make(chan FileEvent)

	go debounceFileEvents(ctx, events, debouncedEvents, time.Duration(config.DebounceTime)*time.Millisecond)

	go func() {
		for {
			select {
			case event, ok := <-debouncedEvents:
				if !ok {
					return
				}
				revalidate(ctx, config, event.Path)
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ignored(event.Name, config.IgnoreDirs) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					events <- FileEvent{Path: event.Name, Op: event.Op, Time: time.Now()}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.G(ctx).WithError(err).Error("error watching files")
			case <-ctx.Done():
				return
			}
		}
	}()

	for _, dir := range config.Dirs {
		if err := addRecursive(watcher, dir, config.IgnoreDirs); err != nil {
			return errors.Wrapf(err, "failed to watch %s", dir)
		}
		presenter.Info(fmt.Sprintf("Watching %s", dir))
	}

	<-ctx.Done()
	return nil
}

// addRecursive registers a directory and all its subdirectories with the
// watcher
func addRecursive(watcher *fsnotify.Watcher, root string, ignoreDirs []string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if ignored(path, ignoreDirs) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func ignored(path string, ignoreDirs []string) bool {
	for _, dir := range ignoreDirs {
		if path == dir || strings.Contains(path, dir+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

// revalidate finds the skill directory containing the changed file and runs
// validation on it
func revalidate(ctx context.Context, config *WatchConfig, changedPath string) {
	for _, dir := range config.Dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		changed, err := filepath.Abs(changedPath)
		if err != nil {
			continue
		}
		if changed != abs && !strings.HasPrefix(changed, abs+string(os.PathSeparator)) {
			continue
		}

		logger.G(ctx).WithField("file", changedPath).Debug("change detected")
		presenter.Info(fmt.Sprintf("Change detected: %s", changedPath))

		result := validate.SkillDir(dir)
		printResult(result)
		if result.OK() {
			if _, err := skills.Load(dir); err == nil {
				presenter.Success(fmt.Sprintf("%s: valid", dir))
			}
		}
		return
	}
}

// debounceFileEvents coalesces rapid successive events on the same path
func debounceFileEvents(ctx context.Context, in <-chan FileEvent, out chan<- FileEvent, window time.Duration) {
	pending := make(map[string]FileEvent)
	timer := time.NewTimer(window)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case event, ok := <-in:
			if !ok {
				close(out)
				return
			}
			pending[event.Path] = event
			timer.Reset(window)
		case <-timer.C:
			for _, event := range pending {
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
			pending = make(map[string]FileEvent)
		case <-ctx.Done():
			return
		}
	}
}
