package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hexbee-net/cstable"
	"github.com/hexbee-net/cstable/schema"
	"github.com/hexbee-net/cstable/source"
	"github.com/hexbee-net/cstable/source/local"
	"github.com/hexbee-net/errors"
)

const maxLineSize = 64 * 1024 * 1024

func (a *app) openTable(ctx context.Context, location string) (*cstable.TableReader, error) {
	src, err := a.storage.openReader(ctx, location)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("opening table",
		zap.String("location", source.Location(src)),
		zap.Int64("size", src.Size()))

	table, err := cstable.OpenTable(ctx, src, cstable.WithLogger(a.logger))
	if err != nil {
		_ = src.Close()
		return nil, err
	}

	return table, nil
}

func (a *app) inspectCommand() *cobra.Command {
	var showPages bool

	cmd := &cobra.Command{
		Use:   "inspect <table>",
		Short: "Print the footer of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.openTable(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer table.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rows:    %d\n", table.NumRows())
			fmt.Fprintf(out, "codec:   %s\n", table.Codec())
			fmt.Fprintf(out, "columns: %d\n\n", len(table.Columns()))

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPATH\tTYPE\tENCODING\tRMAX\tDMAX\tTRIPLES\tOFFSET\tSIZE")

			for _, c := range table.Columns() {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
					c.ID, c.Path, schema.Type(c.Type), schema.Encoding(c.Encoding),
					c.RLevelMax, c.DLevelMax, c.NumTriples, c.BodyOffset, c.BodySize)
			}

			if err := tw.Flush(); err != nil {
				return err
			}

			if !showPages {
				return nil
			}

			fmt.Fprintln(out)

			tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "COLUMN\tKIND\tOFFSET\tSIZE")

			for _, e := range table.Pages() {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", e.ColumnID, e.Kind, e.Page.Offset, e.Page.Size)
			}

			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&showPages, "pages", false, "also list the column index")

	return cmd
}

func (a *app) dumpCommand() *cobra.Command {
	var (
		columns []string
		limit   uint64
		showDef bool
	)

	cmd := &cobra.Command{
		Use:   "dump <table>",
		Short: "Print the records of a table as JSON lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.openTable(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer table.Close()

			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush()

			if showDef {
				def, err := table.Schema().Definition()
				if err != nil {
					return err
				}

				_, err = out.Write(def)

				return err
			}

			m, err := cstable.NewRecordMaterializer(table.Schema(), table,
				cstable.WithLogger(a.logger),
				cstable.WithProjection(columns...))
			if err != nil {
				return err
			}

			for n := uint64(0); limit == 0 || n < limit; n++ {
				rec, err := m.NextRecord()
				if err == io.EOF {
					break
				}

				if err != nil {
					return err
				}

				line, err := cstable.MarshalRecordJSON(table.Schema(), rec)
				if err != nil {
					return err
				}

				if _, err := out.Write(append(line, '\n')); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", nil, "only read these columns (dotted paths)")
	cmd.Flags().Uint64Var(&limit, "limit", 0, "stop after this many records")
	cmd.Flags().BoolVar(&showDef, "schema", false, "print the schema definition instead of the records")

	return cmd
}

func (a *app) writeFlags(cmd *cobra.Command) {
	cmd.Flags().String("codec", "snappy", "page compression (none, snappy, gzip, lz4, zstd, brotli)")
	cmd.Flags().Int("page-size", 64*1024, "target size of column pages")
}

func (a *app) loadCommand() *cobra.Command {
	var schemaFile string

	cmd := &cobra.Command{
		Use:   "load <records.jsonl> <table>",
		Short: "Write JSON lines records into a new local table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := os.ReadFile(schemaFile)
			if err != nil {
				return errors.Wrap(err, "failed to read schema")
			}

			s, err := schema.ParseDefinition(def)
			if err != nil {
				return err
			}

			in, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "failed to open records")
			}
			defer in.Close()

			opts, err := a.tableOptions()
			if err != nil {
				return err
			}

			file, err := local.NewWriter(args[1])
			if err != nil {
				return err
			}
			defer file.Close()

			w, err := cstable.NewTableWriter(file, s, opts...)
			if err != nil {
				return err
			}

			shredder, err := cstable.NewRecordShredder(w)
			if err != nil {
				return err
			}

			scanner := bufio.NewScanner(in)
			scanner.Buffer(make([]byte, 64*1024), maxLineSize)

			line := 0

			for scanner.Scan() {
				line++

				if len(scanner.Bytes()) == 0 {
					continue
				}

				rec, err := cstable.UnmarshalRecordJSON(s, scanner.Bytes())
				if err != nil {
					return errors.WithFields(err, errors.Fields{"line": line})
				}

				if err := shredder.AddRecord(rec); err != nil {
					return errors.WithFields(err, errors.Fields{"line": line})
				}
			}

			if err := scanner.Err(); err != nil {
				return errors.Wrap(err, "failed to read records")
			}

			if err := w.Commit(cmd.Context()); err != nil {
				return err
			}

			a.logger.Info("table loaded",
				zap.String("table", args[1]),
				zap.Uint64("rows", w.NumRows()))

			return file.Sync()
		},
	}

	cmd.Flags().StringVar(&schemaFile, "schema", "", "YAML schema definition")
	_ = cmd.MarkFlagRequired("schema")
	a.writeFlags(cmd)

	return cmd
}

func (a *app) compactCommand() *cobra.Command {
	var (
		from, to uint64
		every    uint64
	)

	cmd := &cobra.Command{
		Use:   "compact <source table> <local table>",
		Short: "Copy a range of rows of a table into a new local table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.openTable(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer src.Close()

			opts, err := a.tableOptions()
			if err != nil {
				return err
			}

			file, err := local.NewWriter(args[1])
			if err != nil {
				return err
			}
			defer file.Close()

			dst, err := cstable.NewTableWriter(file, src.Schema(), opts...)
			if err != nil {
				return err
			}

			keep := func(row uint64) bool {
				if row < from || (to > 0 && row >= to) {
					return false
				}

				return every <= 1 || (row-from)%every == 0
			}

			if err := cstable.CopyRows(dst, src, keep); err != nil {
				return err
			}

			if err := dst.Commit(cmd.Context()); err != nil {
				return err
			}

			a.logger.Info("table compacted",
				zap.String("source", args[0]),
				zap.String("target", args[1]),
				zap.Uint64("source-rows", src.NumRows()),
				zap.Uint64("rows", dst.NumRows()))

			return file.Sync()
		},
	}

	cmd.Flags().Uint64Var(&from, "from", 0, "first row to keep")
	cmd.Flags().Uint64Var(&to, "to", 0, "stop before this row (0 keeps every remaining row)")
	cmd.Flags().Uint64Var(&every, "every", 1, "keep one row out of this many")
	a.writeFlags(cmd)

	return cmd
}

func (a *app) publishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <local table> <destination>",
		Short: "Upload a committed table to file, s3, gs, azblob or hdfs storage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := local.NewReader(args[0])
			if err != nil {
				return err
			}
			defer src.Close()

			dst, err := a.storage.openWriter(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			n, err := cstable.Publish(cmd.Context(), dst, src)
			if err != nil {
				return err
			}

			a.logger.Info("table published",
				zap.String("source", args[0]),
				zap.String("destination", source.Location(dst)),
				zap.Int64("bytes", n))

			return nil
		},
	}
}
