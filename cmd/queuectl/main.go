// queuectl inspects the persisted news queue.
//
// Usage: queuectl [status|posted|pending|clear-old [days]]
//
// The inspector is read-only except for clear-old. It always exits 0: a
// missing or empty queue is a valid state to report, not a failure.
package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"ainews/internal/queue"
	"ainews/internal/storage"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB454"))
)

func main() {
	_ = godotenv.Load()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	store := storage.New(dataDir)

	state, err := queue.Load(store)
	if err != nil {
		fmt.Println(warnStyle.Render("cannot read queue state: " + err.Error()))
		return
	}

	cmd := "status"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "status":
		showStatus(state)
	case "posted":
		showPosted(state)
	case "pending":
		showPending(state)
	case "clear-old":
		days := state.Config.MaxPendingAgeDays
		if len(os.Args) > 2 {
			if v, err := strconv.Atoi(os.Args[2]); err == nil && v > 0 {
				days = v
			}
		}
		clearOld(store, state, days)
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		fmt.Println("Usage: queuectl [status|posted|pending|clear-old [days]]")
	}
}

func showStatus(state *queue.State) {
	now := time.Now()
	today := queue.DayKey(now)
	usage := state.UsageFor(today)
	cfg := state.Config

	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf("AI News Queue | %s", today)))
	fmt.Printf("  Posts today : %d/%d  (%d remaining)\n",
		usage.Posts, cfg.DailyPostLimit, state.RemainingPosts(now))
	fmt.Printf("  Tokens today: ~%d\n", usage.EstimatedTokens)
	fmt.Printf("  Min score   : %d\n", cfg.MinScoreToPost)

	pending := sortedPending(state)
	fmt.Printf("\n  %s (%d items):\n", titleStyle.Render("PENDING"), len(pending))
	if len(pending) == 0 {
		fmt.Println(dimStyle.Render("    (empty)"))
	}
	for i, item := range pending {
		if i >= 5 {
			fmt.Println(dimStyle.Render(fmt.Sprintf("    ... and %d more", len(pending)-5)))
			break
		}
		fmt.Printf("    %d. %s %s\n", i+1, scoreStyle.Render(fmt.Sprintf("[%3d]", item.Score)), item.Title)
		fmt.Println(dimStyle.Render(fmt.Sprintf("         %s | added %s",
			tagLine(item.Companies, item.Topics), item.AddedAt.Format("2006-01-02"))))
	}

	recent := sortedPosted(state)
	fmt.Printf("\n  %s:\n", titleStyle.Render("RECENTLY POSTED"))
	if len(recent) == 0 {
		fmt.Println(dimStyle.Render("    (none yet)"))
	}
	for i, item := range recent {
		if i >= 5 {
			break
		}
		fmt.Printf("    %s %s  %s\n",
			scoreStyle.Render(fmt.Sprintf("[%3d]", item.Score)),
			item.PostedAt.Format("2006-01-02"), item.Title)
		fmt.Println(dimStyle.Render("         " + item.File))
	}

	fmt.Printf("\n  TOTAL POSTED: %d\n\n", len(state.Posted))
}

func showPosted(state *queue.State) {
	recent := sortedPosted(state)
	fmt.Printf("\nAll posted (%d total):\n\n", len(recent))
	for _, item := range recent {
		fmt.Printf("  %s %s  %s\n",
			scoreStyle.Render(fmt.Sprintf("[%3d]", item.Score)),
			item.PostedAt.Format("2006-01-02"), item.Title)
		fmt.Println(dimStyle.Render("       tags: " + tagLine(item.Companies, item.Topics)))
		fmt.Println(dimStyle.Render("       file: " + item.File))
		fmt.Println()
	}
}

func showPending(state *queue.State) {
	pending := sortedPending(state)
	fmt.Printf("\nPending queue (%d items):\n\n", len(pending))
	for i, item := range pending {
		fmt.Printf("  %d. %s %s\n", i+1, scoreStyle.Render(fmt.Sprintf("[%3d]", item.Score)), item.Title)
		fmt.Println(dimStyle.Render("       tags: " + tagLine(item.Companies, item.Topics)))
		fmt.Println(dimStyle.Render(fmt.Sprintf("       added: %s | source: %s",
			item.AddedAt.Format("2006-01-02"), item.Source)))
		fmt.Println()
	}
}

func clearOld(store *storage.Store, state *queue.State, days int) {
	removed := state.ClearOldPending(days, time.Now())
	if err := state.Save(store); err != nil {
		fmt.Println(warnStyle.Render("save failed: " + err.Error()))
		return
	}
	fmt.Printf("Removed %d pending items older than %d days.\n", removed, days)
}

func sortedPending(state *queue.State) []queue.PendingItem {
	pending := append([]queue.PendingItem{}, state.Pending...)
	sort.Slice(pending, func(i, j int) bool { return pending[i].Score > pending[j].Score })
	return pending
}

func sortedPosted(state *queue.State) []queue.PostedItem {
	posted := append([]queue.PostedItem{}, state.Posted...)
	sort.Slice(posted, func(i, j int) bool { return posted[i].PostedAt.After(posted[j].PostedAt) })
	return posted
}

func tagLine(companies, topics []string) string {
	tags := append(append([]string{}, companies...), topics...)
	if len(tags) == 0 {
		return "(no tags)"
	}
	out := ""
	for i, t := range tags {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out
}
