package main

import (
	"github.com/Zuo-Peng/chatlog/internal/index"
	"github.com/Zuo-Peng/chatlog/internal/search"
	"github.com/Zuo-Peng/chatlog/internal/tui"
	"github.com/spf13/cobra"
)

func listCmd(g *globals) *cobra.Command {
	var sender, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse indexed messages newest first",
		Long:  `Opens a TUI panel showing indexed messages, newest first. Type to filter by message text; from:name narrows to one sender. Enter copies the selected message, ctrl+o opens it in $EDITOR.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := index.OpenDB(g.cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			refreshIndex(g, db)

			return tui.RunList(db, search.Options{
				Sender: sender,
				Since:  since,
				Limit:  limit,
			})
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "Filter by sender (substring, case-insensitive)")
	cmd.Flags().StringVar(&since, "since", "", "Filter messages sent since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 500, "Max results")

	return cmd
}
