package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bookfather/admin/internal/catalog"
	"github.com/bookfather/admin/internal/export"
	"github.com/bookfather/admin/internal/models"
	"github.com/bookfather/admin/internal/screen"
)

// controller is a resource screen together with the Init and Update it is
// driven through.
type controller[T models.Record[F], F any] struct {
	*screen.Screen[T, F]
	init   func() tea.Cmd
	update func(tea.Msg) tea.Cmd
	// relate replaces the draft's related ids through the screen's selector.
	// Nil when the resource has no relation.
	relate func(ids []string) error
}

// flagField binds one command-line flag to a draft field.
type flagField[F any] struct {
	name string
	bind func(cmd *cobra.Command, staged *F)
	copy func(dst, staged *F)
}

func stringFlag[F any](name, usage string, ptr func(*F) *string) flagField[F] {
	return flagField[F]{
		name: name,
		bind: func(cmd *cobra.Command, staged *F) { cmd.Flags().StringVar(ptr(staged), name, "", usage) },
		copy: func(dst, staged *F) { *ptr(dst) = *ptr(staged) },
	}
}

// resource describes the CLI surface of one collection.
type resource[T models.Record[F], F any] struct {
	singular string
	plural   string
	fields   []flagField[F]
	// relation names a slice flag whose ids are routed through
	// controller.relate instead of being copied into the draft.
	relation      string
	relationUsage string
	table         func([]T) export.Table
	parquet       func(path string, items []T) error
	readParquet   func(path string) ([]T, error)
	open          func(ctx context.Context, api *catalog.API, opts screen.Options) controller[T, F]
}

// load opens the screen and waits for its first list fetch.
func (r resource[T, F]) load(cmd *cobra.Command, o *rootOptions) (controller[T, F], error) {
	api, err := o.api()
	if err != nil {
		return controller[T, F]{}, err
	}
	c := r.open(cmd.Context(), api, o.screenOptions(nil))
	settle(c.update, c.init())
	if msg := c.List().Err(); msg != "" {
		return c, errors.New(msg)
	}
	return c, nil
}

func (r resource[T, F]) command(o *rootOptions, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   r.plural,
		Short: short,
	}
	cmd.AddCommand(r.listCmd(o))
	cmd.AddCommand(r.addCmd(o))
	cmd.AddCommand(r.editCmd(o))
	cmd.AddCommand(r.deleteCmd(o))
	cmd.AddCommand(r.exportCmd(o))
	cmd.AddCommand(r.showCmd())
	return cmd
}

func (r resource[T, F]) listCmd(o *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all " + r.plural,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := r.load(cmd, o)
			if err != nil {
				return err
			}
			items := c.Items()
			return export.Write(cmd.OutOrStdout(), format, items, r.table(items))
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", export.FormatText, "Output format (text, json, yaml, csv)")
	return cmd
}

func (r resource[T, F]) addCmd(o *rootOptions) *cobra.Command {
	var staged F
	var related []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a " + r.singular,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := r.load(cmd, o)
			if err != nil {
				return err
			}
			c.OpenAdd()
			c.UpdateDraft(func(d *F) { r.apply(cmd, d, &staged) })
			if err := r.relate(cmd, c, related); err != nil {
				return err
			}
			if err := r.submit(c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", r.singular)
			return nil
		},
	}

	r.bind(cmd, &staged, &related)
	return cmd
}

func (r resource[T, F]) editCmd(o *rootOptions) *cobra.Command {
	var staged F
	var related []string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a " + r.singular + "; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := r.load(cmd, o)
			if err != nil {
				return err
			}
			if err := c.OpenEditID(args[0]); err != nil {
				return fmt.Errorf("%s %s: %w", r.singular, args[0], err)
			}
			c.UpdateDraft(func(d *F) { r.apply(cmd, d, &staged) })
			if err := r.relate(cmd, c, related); err != nil {
				return err
			}
			if err := r.submit(c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", r.singular, args[0])
			return nil
		},
	}

	r.bind(cmd, &staged, &related)
	return cmd
}

func (r resource[T, F]) bind(cmd *cobra.Command, staged *F, related *[]string) {
	for _, f := range r.fields {
		f.bind(cmd, staged)
	}
	if r.relation != "" {
		cmd.Flags().StringSliceVar(related, r.relation, nil, r.relationUsage)
	}
}

// relate hands the relation flag to the controller when it was given.
func (r resource[T, F]) relate(cmd *cobra.Command, c controller[T, F], ids []string) error {
	if r.relation == "" || !cmd.Flags().Changed(r.relation) {
		return nil
	}
	return c.relate(ids)
}

// apply copies the flags the user set into the draft.
func (r resource[T, F]) apply(cmd *cobra.Command, draft, staged *F) {
	for _, f := range r.fields {
		if cmd.Flags().Changed(f.name) {
			f.copy(draft, staged)
		}
	}
}

// submit sends the open draft and reports the alert a failure raised.
func (r resource[T, F]) submit(c controller[T, F]) error {
	settle(c.update, c.Submit())
	if alert := c.Alert(); alert != "" {
		return errors.New(alert)
	}
	return nil
}

func (r resource[T, F]) deleteCmd(o *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + r.singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := r.load(cmd, o)
			if err != nil {
				return err
			}
			id := args[0]
			if _, ok := c.Find(id); !ok {
				return fmt.Errorf("%s %s: %w", r.singular, id, screen.ErrUnknownRecord)
			}

			confirm := promptConfirm(cmd.InOrStdin(), cmd.OutOrStdout())
			if yes {
				confirm = func(string) bool { return true }
			}
			removal := c.Delete(id, confirm)
			if removal == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			settle(c.update, removal)
			if alert := c.Alert(); alert != "" {
				return errors.New(alert)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", r.singular, id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")
	return cmd
}

// promptConfirm asks on out and accepts "y" or "yes" from in.
func promptConfirm(in io.Reader, out io.Writer) screen.ConfirmFunc {
	return func(message string) bool {
		fmt.Fprintf(out, "%s [y/N] ", message)
		answer, _ := bufio.NewReader(in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		}
		return false
	}
}

func (r resource[T, F]) exportCmd(o *rootOptions) *cobra.Command {
	var path string
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every " + r.singular + " to a file",
		Example: `  # Snapshot to parquet
  bookfather ` + r.plural + ` export --file ` + r.plural + `.parquet

  # Snapshot to YAML
  bookfather ` + r.plural + ` export --file ` + r.plural + `.yaml --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := r.load(cmd, o)
			if err != nil {
				return err
			}
			items := c.Items()

			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(path), ".")
			}
			if format == "yml" {
				format = export.FormatYAML
			}
			if format == "parquet" {
				if err := r.parquet(path, items); err != nil {
					return err
				}
			} else if err := writeFile(path, format, items, r.table(items)); err != nil {
				return err
			}

			o.logger.Info("Exported "+r.plural, "path", path, "format", format, "count", len(items))
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "Destination file (required)")
	cmd.Flags().StringVar(&format, "format", "", "json, yaml, csv, text or parquet (default from the file extension)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// showCmd prints a parquet snapshot written by export. It does not talk to
// the API.
func (r resource[T, F]) showCmd() *cobra.Command {
	var path string
	var format string

	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print a parquet snapshot of " + r.plural,
		Example: `  bookfather ` + r.plural + ` show --file ` + r.plural + `.parquet -o json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := r.readParquet(path)
			if err != nil {
				return err
			}
			return export.Write(cmd.OutOrStdout(), format, items, r.table(items))
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "Parquet file written by export (required)")
	cmd.Flags().StringVarP(&format, "output", "o", export.FormatText, "Output format (text, json, yaml, csv)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func writeFile(path, format string, data any, table export.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := export.Write(file, format, data, table); err != nil {
		return err
	}
	return file.Close()
}
