package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/greenhouse/internal/telemetry"
)

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "View the JSONL session event stream",
	Long: `Reads and formats the storefront's telemetry file.

Without --file, reads telemetry.file from the configuration.
With --follow (-f), watches the file for new events (like tail -f).`,
	Args: cobra.NoArgs,
	RunE: runTelemetry,
}

func init() {
	telemetryCmd.Flags().String("file", "", "telemetry file to read (default: telemetry.file)")
	telemetryCmd.Flags().BoolP("follow", "f", false, "follow the file for new events")
	telemetryCmd.Flags().String("session", "", "only show events from this session id")
	rootCmd.AddCommand(telemetryCmd)
}

func runTelemetry(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")
	follow, _ := cmd.Flags().GetBool("follow")
	session, _ := cmd.Flags().GetString("session")

	if path == "" {
		path = viper.GetString("telemetry.file")
	}
	if path == "" {
		return fmt.Errorf("telemetry: no file given and telemetry.file is not configured")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	defer f.Close()

	w := cmd.OutOrStdout()
	lr := &lineReader{r: bufio.NewReader(f)}
	if err := lr.printLines(w, session); err != nil {
		return fmt.Errorf("telemetry: read %s: %w", path, err)
	}

	if !follow {
		// A file that does not end in a newline still ends its last event.
		lr.flush(w, session)
		return nil
	}
	return tailFollow(w, lr, path, session)
}

// lineReader reads newline-terminated events. An unterminated tail is held
// back until the rest of its line arrives.
type lineReader struct {
	r       *bufio.Reader
	partial string
}

// printLines prints every complete line available from the reader.
func (lr *lineReader) printLines(w io.Writer, session string) error {
	for {
		chunk, err := lr.r.ReadString('\n')
		if err == io.EOF {
			lr.partial += chunk
			return nil
		}
		if err != nil {
			return err
		}
		line := strings.TrimSpace(lr.partial + chunk)
		lr.partial = ""
		if line != "" {
			printEvent(w, line, session)
		}
	}
}

// flush prints a held-back tail as a final event.
func (lr *lineReader) flush(w io.Writer, session string) {
	if line := strings.TrimSpace(lr.partial); line != "" {
		printEvent(w, line, session)
	}
	lr.partial = ""
}

// tailFollow watches the file for new data using fsnotify and prints new events.
func tailFollow(w io.Writer, lr *lineReader, path, session string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("telemetry: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("telemetry: watch %s: %w", path, err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == 0 {
				continue
			}
			if err := lr.printLines(w, session); err != nil {
				return fmt.Errorf("telemetry: read %s: %w", path, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("telemetry: watch %s: %w", path, err)
		}
	}
}

// printEvent decodes a JSONL line and prints a human-readable representation.
// Events from other sessions are skipped when session is set.
func printEvent(w io.Writer, line, session string) {
	var evt telemetry.Event
	if err := json.Unmarshal([]byte(line), &evt); err != nil {
		fmt.Fprintf(w, "??? %s\n", line)
		return
	}
	if session != "" && evt.SessionID != session {
		return
	}

	ts := evt.Timestamp.Format(time.TimeOnly)
	parts := []string{fmt.Sprintf("[%s]", ts), evt.Kind}

	if evt.SessionID != "" {
		parts = append(parts, "session="+shortSession(evt.SessionID))
	}
	if evt.Data != nil {
		if m, ok := evt.Data.(map[string]any); ok {
			parts = append(parts, formatDataMap(m))
		} else {
			data, _ := json.Marshal(evt.Data)
			parts = append(parts, string(data))
		}
	}

	fmt.Fprintln(w, strings.Join(parts, " "))
}

// shortSession returns the first block of a uuid session id.
func shortSession(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// formatDataMap formats a data map as key=value pairs sorted by key.
func formatDataMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, m[k])
	}
	return b.String()
}
