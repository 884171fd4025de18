package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BoldPhoenix/ark-asa-parser/save"
)

// newTable returns a writer with the house rendering style.
func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	return t
}

// orDash renders optional fields, which are nil when absent from the
// save.
func orDash[T any](v *T) string {
	if v == nil {
		return "-"
	}

	return fmt.Sprintf("%v", *v)
}

func newReader(logger *zap.Logger) (*save.Reader, error) {
	return save.NewReader(flagDir, save.WithLogger(logger))
}

func newPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "players",
		Short:   "List players from profile files",
		PreRunE: requireDir,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			r, err := newReader(logger)
			if err != nil {
				return err
			}

			players, err := r.AllPlayers(cmd.Context())
			if err != nil {
				return err
			}

			t := newTable()
			t.AppendHeader(table.Row{"EOS ID", "Player", "Character", "Tribe", "Level", "XP", "Problems"})
			for _, p := range players {
				t.AppendRow(table.Row{
					p.EOSID,
					orDash(p.PlayerName),
					orDash(p.CharacterName),
					orDash(p.TribeID),
					orDash(p.Level),
					orDash(p.Experience),
					len(p.ProblemFields()),
				})
			}
			t.Render()

			return nil
		},
	}
}

func newTribesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "tribes",
		Short:   "List tribes from tribe files",
		PreRunE: requireDir,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			r, err := newReader(logger)
			if err != nil {
				return err
			}

			tribes, err := r.AllTribes(cmd.Context())
			if err != nil {
				return err
			}

			t := newTable()
			t.AppendHeader(table.Row{"Tribe ID", "Name", "Members", "Dinos", "Log Entries"})
			for _, tr := range tribes {
				t.AppendRow(table.Row{
					tr.TribeID,
					orDash(tr.TribeName),
					len(tr.Members),
					orDash(tr.TamedDinoCount),
					len(tr.TribeLog),
				})
			}
			t.Render()

			return nil
		},
	}
}

func newDinosCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dinos",
		Short:   "List tamed creatures from the world save",
		PreRunE: requireDir,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			r, err := newReader(logger)
			if err != nil {
				return err
			}

			dinos, err := r.Dinos(cmd.Context())
			if err != nil {
				return err
			}

			t := newTable()
			t.AppendHeader(table.Row{"Actor", "Species", "Name", "Level", "Owner", "Tribe"})
			for _, d := range dinos {
				t.AppendRow(table.Row{
					d.ActorID,
					orDash(d.SpeciesName),
					orDash(d.TamedName),
					orDash(d.Level),
					orDash(d.OwnerName),
					orDash(d.TribeID),
				})
			}
			t.Render()

			return nil
		},
	}
}

func newStructuresCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "structures",
		Short:   "List placed structures from the world save",
		PreRunE: requireDir,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			r, err := newReader(logger)
			if err != nil {
				return err
			}

			structures, err := r.Structures(cmd.Context())
			if err != nil {
				return err
			}

			t := newTable()
			t.AppendHeader(table.Row{"Actor", "Type", "Category", "Owner", "Tribe", "Health"})
			for _, s := range structures {
				t.AppendRow(table.Row{
					s.ActorID,
					orDash(s.StructureType),
					orDash(s.Category),
					orDash(s.OwnerName),
					orDash(s.TribeName),
					orDash(s.Health),
				})
			}
			t.Render()

			return nil
		},
	}
}

func newClusterCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "cluster",
		Short:   "List cluster transfers from ClusterObjects",
		PreRunE: requireDir,
		RunE: func(_ *cobra.Command, _ []string) error {
			transfers, err := save.ScanCluster(flagDir)
			if err != nil {
				return err
			}

			t := newTable()
			t.AppendHeader(table.Row{"File", "Kind", "Steam ID", "Character", "Size"})
			for _, tr := range transfers {
				t.AppendRow(table.Row{
					tr.FileName,
					tr.Kind.String(),
					tr.SteamID,
					orDash(tr.CharacterName),
					tr.Size,
				})
			}
			t.Render()

			return nil
		},
	}
}
