package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/raj-tembe/learn-with-ai/internal/app"
	"github.com/raj-tembe/learn-with-ai/internal/config"
	"github.com/raj-tembe/learn-with-ai/internal/history"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive learning session",
	Long: `Creates a session on the server and starts the interactive loop.
Stage documents with /upload and /link, process them with /ingest, then
ask questions directly. Type /help for the full command list.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Init(ctx); err != nil {
		return err
	}
	if verbose {
		a.Notifier.Infof("Connected to %s, session %s", cfg.ServerURL, a.Session.ID())
	}

	fmt.Println("Welcome to Learn with AI. Upload documents first, then start asking questions!")
	fmt.Println("Type /help for commands.")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := runSlashCommand(ctx, a, line); quit {
				break
			}
			continue
		}

		// Anything else is a question. Rejections (empty, not ingested,
		// in flight) are already surfaced by the engine.
		a.Engine.Ask(ctx, line)
	}

	return scanner.Err()
}

// runSlashCommand dispatches one /command line. Returns true to exit the
// loop.
func runSlashCommand(ctx context.Context, a *app.App, line string) bool {
	fields := strings.Fields(line)
	command, args := fields[0], fields[1:]

	switch command {
	case "/help":
		printChatHelp()

	case "/upload":
		if len(args) == 0 {
			a.Notifier.Warningf("Usage: /upload <file or glob> ...")
			return false
		}
		valid := a.Staging.SelectFiles(expandGlobs(args))
		if len(valid) > 0 {
			a.Staging.UploadBatch(ctx, valid, nil)
		}

	case "/link":
		if len(args) != 1 {
			a.Notifier.Warningf("Usage: /link <url>")
			return false
		}
		a.Staging.AddReferenceLink(ctx, args[0])

	case "/docs":
		printStagedDocuments(a)

	case "/remove":
		if len(args) == 0 {
			a.Notifier.Warningf("Usage: /remove <name>")
			return false
		}
		a.Staging.Remove(strings.Join(args, " "))

	case "/ingest":
		a.Ingest(ctx)

	case "/tone":
		if len(args) != 1 {
			a.Notifier.Warningf("Usage: /tone <%s>", joinTones())
			return false
		}
		a.Session.UpdateSettings(ctx, config.Tone(args[0]), a.Session.Level())

	case "/level":
		if len(args) != 1 {
			a.Notifier.Warningf("Usage: /level <%s>", joinLevels())
			return false
		}
		a.Session.UpdateSettings(ctx, a.Session.Tone(), config.Level(args[0]))

	case "/status":
		printSessionStatus(ctx, a)

	case "/history":
		printHistoryList(a)

	case "/replay":
		if len(args) != 1 {
			a.Notifier.Warningf("Usage: /replay <number>")
			return false
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			a.Notifier.Warningf("Usage: /replay <number>")
			return false
		}
		if err := a.Replay(n - 1); err != nil {
			a.Notifier.Warningf("%v", err)
		}

	case "/clear":
		if !confirm("Clear all chat history") {
			return false
		}
		if err := a.History.Clear(); err != nil {
			a.Notifier.Errorf("Error clearing history: %v", err)
			return false
		}
		a.Notifier.Successf("Chat history cleared")

	case "/export":
		runExportCommand(a, args)

	case "/reset":
		if !confirm("This will clear all documents and start a new session. Continue") {
			return false
		}
		a.ResetSession(ctx)

	case "/quit", "/exit":
		return true

	default:
		a.Notifier.Warningf("Unknown command %s (try /help)", command)
	}

	return false
}

// expandGlobs resolves ** patterns; arguments that match nothing are kept
// as literal paths so missing files still get a per-file warning.
func expandGlobs(args []string) []string {
	var paths []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil || len(matches) == 0 {
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths
}

func printStagedDocuments(a *app.App) {
	docs := a.Staging.Documents()
	if len(docs) == 0 {
		fmt.Println("No documents uploaded yet")
		return
	}
	for _, d := range docs {
		fmt.Printf("  %-6s %s\n", strings.ToUpper(string(d.Kind)), d.Name)
	}
}

func printSessionStatus(ctx context.Context, a *app.App) {
	info, err := a.Session.Info(ctx)
	if err != nil {
		a.Notifier.Errorf("Error fetching session info")
		return
	}
	fmt.Printf("Session:   %s\n", info.SessionID)
	fmt.Printf("Tone:      %s\n", info.Tone)
	fmt.Printf("Level:     %s\n", info.Level)
	fmt.Printf("Documents: %d\n", info.DocumentsCount)
	fmt.Printf("Ingested:  %v\n", info.DBInitialized)
}

func printHistoryList(a *app.App) {
	turns := a.History.LoadAll()
	if len(turns) == 0 {
		fmt.Println("No chat history yet")
		return
	}
	for i, turn := range turns {
		fmt.Printf("  %d. [%s] %s\n", i+1, turn.Timestamp, turn.Question)
	}
}

func runExportCommand(a *app.App, args []string) {
	if len(args) != 2 {
		a.Notifier.Warningf("Usage: /export <markdown|html> <path>")
		return
	}

	format := history.ExportFormat(args[0])
	path := args[1]

	f, err := os.Create(path)
	if err != nil {
		a.Notifier.Errorf("Error creating %s: %v", path, err)
		return
	}
	defer f.Close()

	if err := a.History.Export(f, format, path); err != nil {
		a.Notifier.Errorf("Error exporting history: %v", err)
		return
	}
	a.Notifier.Successf("History exported to %s", path)
}

func joinTones() string {
	items := make([]string, len(config.Tones))
	for i, t := range config.Tones {
		items[i] = string(t)
	}
	return strings.Join(items, "|")
}

func joinLevels() string {
	items := make([]string, len(config.Levels))
	for i, l := range config.Levels {
		items[i] = string(l)
	}
	return strings.Join(items, "|")
}

func printChatHelp() {
	fmt.Print(`Commands:
  /upload <file|glob> ...   upload documents (pdf, txt, csv, json)
  /link <url>               add a reference link
  /docs                     list staged documents
  /remove <name>            remove a staged document (local only)
  /ingest                   process staged documents; enables chat
  /tone <tone>              change assistant tone
  /level <level>            change learner level
  /status                   show server-side session info
  /history                  list saved conversation turns
  /replay <number>          show a past turn again
  /export <format> <path>   export history to markdown or html
  /clear                    delete all saved history
  /reset                    start a fresh session
  /quit                     leave

Anything that is not a command is sent as a question.
`)
}
