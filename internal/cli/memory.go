package cli

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/agent-console/internal/memory"
	"github.com/rcliao/agent-console/internal/model"
	"github.com/rcliao/agent-console/internal/versioned"
)

func openMemory(cmd *cobra.Command) (*memory.Store, func()) {
	b, err := openBackend(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	return memory.NewStore(cmd.Context(), b, logger), onExit(func() { b.Close() })
}

func init() {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect and edit agent memory",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the memory snapshot, optionally filtered",
		Args:  cobra.NoArgs,
		Run:   runMemoryShow,
	}
	show.Flags().StringP("priority", "p", "", "Filter by priority: low, medium, high")
	show.Flags().StringP("type", "t", "", "Filter patterns by type: preference, behavior, skill, directive")
	show.Flags().StringP("search", "s", "", "Case-insensitive text filter")
	show.Flags().String("order", "desc", "Time order: desc or asc")

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search memory by text",
		Args:  cobra.MinimumNArgs(1),
		Run:   runMemorySearch,
	}

	dispatch := &cobra.Command{
		Use:   "dispatch [action-json]",
		Short: "Apply an action document",
		Long: `Apply one action of the form {"type": "...", "payload": ...}.
Reads stdin when no argument is given. Unknown types are accepted and change nothing.`,
		Args: cobra.MaximumNArgs(1),
		Run:  runMemoryDispatch,
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Clear every memory collection",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s, done := openMemory(cmd)
			defer done()
			printJSON(s.ResetState(cmd.Context()))
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show memory counts",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s, done := openMemory(cmd)
			defer done()
			printJSON(memory.ComputeStats(s.State()))
		},
	}

	skills := &cobra.Command{
		Use:   "skills",
		Short: "Reconstruct the skill map from skill patterns",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s, done := openMemory(cmd)
			defer done()
			printJSON(memory.ReconstructSkills(s.State(), time.Now()))
		},
	}

	related := &cobra.Command{
		Use:   "related <pattern-id>",
		Short: "Resolve a pattern's related patterns",
		Args:  cobra.ExactArgs(1),
		Run:   runMemoryRelated,
	}

	toggleDirective := &cobra.Command{
		Use:   "toggle-directive <id>",
		Short: "Flip a directive between active and inactive",
		Args:  cobra.ExactArgs(1),
		Run:   runToggleDirective,
	}

	toggleObjective := &cobra.Command{
		Use:   "toggle-objective <id>",
		Short: "Flip a learning objective between in_progress and completed",
		Args:  cobra.ExactArgs(1),
		Run:   runToggleObjective,
	}

	say := &cobra.Command{
		Use:   "say <message>",
		Short: "Append an operator message to the communication log",
		Args:  cobra.MinimumNArgs(1),
		Run:   runMemorySay,
	}

	cmd.AddCommand(show, search, dispatch, reset, stats, skills, related,
		toggleDirective, toggleObjective, say,
		newExportCmd[model.MemoryState, memory.Action](openMemory, "memory"),
		newImportCmd[model.MemoryState, memory.Action](openMemory, "memory"),
	)
	RootCmd.AddCommand(cmd)
}

func runMemoryShow(cmd *cobra.Command, args []string) {
	priority, _ := cmd.Flags().GetString("priority")
	typ, _ := cmd.Flags().GetString("type")
	search, _ := cmd.Flags().GetString("search")
	order, _ := cmd.Flags().GetString("order")

	s, done := openMemory(cmd)
	defer done()

	printJSON(memory.Query(s.State(), memory.QueryParams{
		Priority:    model.Priority(priority),
		PatternType: model.PatternType(typ),
		Search:      search,
		Order:       memory.SortOrder(order),
	}))
}

func runMemorySearch(cmd *cobra.Command, args []string) {
	s, done := openMemory(cmd)
	defer done()
	printJSON(memory.Query(s.State(), memory.QueryParams{Search: strings.Join(args, " ")}))
}

func runMemoryDispatch(cmd *cobra.Command, args []string) {
	data, err := readArgOrStdin(args)
	if err != nil {
		exitErr("read action", err)
	}
	a, err := memory.DecodeAction(data)
	if err != nil {
		exitErr("decode action", err)
	}

	s, done := openMemory(cmd)
	defer done()
	printJSON(s.Dispatch(cmd.Context(), a))
}

func runMemoryRelated(cmd *cobra.Command, args []string) {
	s, done := openMemory(cmd)
	defer done()

	related, dangling, ok := memory.Related(s.State(), args[0])
	if !ok {
		exitErr("related", errNotFound("pattern", args[0]))
	}
	if related == nil {
		related = []model.Pattern{}
	}
	printJSON(map[string]any{"related": related, "dangling": dangling})
}

func runToggleDirective(cmd *cobra.Command, args []string) {
	s, done := openMemory(cmd)
	defer done()

	for _, d := range s.State().Directives {
		if d.ID == args[0] {
			st := s.Dispatch(cmd.Context(), memory.ToggleDirective(d))
			printJSON(findByID(st.Directives, args[0], func(d model.SystemDirective) string { return d.ID }))
			return
		}
	}
	exitErr("toggle directive", errNotFound("directive", args[0]))
}

func runToggleObjective(cmd *cobra.Command, args []string) {
	s, done := openMemory(cmd)
	defer done()

	for _, o := range s.State().LearningObjectives {
		if o.ID == args[0] {
			st := s.Dispatch(cmd.Context(), memory.ToggleObjective(o))
			printJSON(findByID(st.LearningObjectives, args[0], func(o model.LearningObjective) string { return o.ID }))
			return
		}
	}
	exitErr("toggle objective", errNotFound("objective", args[0]))
}

func runMemorySay(cmd *cobra.Command, args []string) {
	s, done := openMemory(cmd)
	defer done()

	msg := memory.NewMessage(versioned.NewID(), strings.Join(args, " "), time.Now())
	s.Dispatch(cmd.Context(), memory.AddMessage{Message: msg})
	printJSON(msg)
}

func readArgOrStdin(args []string) ([]byte, error) {
	if len(args) == 1 && args[0] != "-" {
		return []byte(args[0]), nil
	}
	return io.ReadAll(os.Stdin)
}

func findByID[T any](items []T, id string, idOf func(T) string) *T {
	for i := range items {
		if idOf(items[i]) == id {
			return &items[i]
		}
	}
	return nil
}
