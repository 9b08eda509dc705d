package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meur/pokeforge/internal/detail"
	"github.com/meur/pokeforge/internal/tui"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <name|id>",
	Short: "Print one Pokémon's full record",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the record as JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	client, _, closeJournal, err := newClient(logger)
	if err != nil {
		return err
	}
	defer closeJournal()

	view := detail.NewView(client, logger)
	view.Load(cmd.Context(), args[0])

	st := view.State()
	if st.Record == nil {
		return fmt.Errorf("pokémon not found: %s", args[0])
	}
	if showJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st.Record)
	}
	fmt.Println(tui.RenderRecord(st.Record))
	return nil
}
