package hubctl

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pehlione.com/admin/internal/hubapi"
	"pehlione.com/admin/internal/viewmode"
)

// ErrRejected is returned when apply or bulk leaves items unprocessed.
var ErrRejected = errors.New("some items were rejected")

type app struct {
	v      *viper.Viper
	cfg    Config
	client *hubapi.Client
}

// NewRootCmd builds the command tree. Each call has its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "hubctl",
		Short:         "hubctl manages coupons, categories, products and staff",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("base-url", "", "server base URL")
	pf.String("token", "", "admin bearer token")
	pf.Int("page-size", 0, "page size for list")
	pf.StringP("output", "o", "", "output format: yaml or json")
	for key, flag := range map[string]string{
		"base_url":  "base-url",
		"token":     "token",
		"page_size": "page-size",
		"output":    "output",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		a.listCmd(),
		a.getCmd(),
		a.deleteCmd(),
		a.applyCmd(),
		a.bulkCmd(),
		modeCmd(),
	)
	return root
}

// Execute runs hubctl and exits non-zero on failure.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.client = hubapi.New(cfg.BaseURL, cfg.Token)
	a.client.OnNotice = func(n hubapi.Notice) {
		fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", n.Kind, n.Message)
	}
	return nil
}

func (a *app) out(cmd *cobra.Command) printer {
	return printer{w: cmd.OutOrStdout(), format: a.cfg.Output}
}

func (a *app) listCmd() *cobra.Command {
	var (
		q, status string
		page      int
	)
	cmd := &cobra.Command{
		Use:   "list <entity>",
		Short: "List one page of an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.client.List(cmd.Context(), args[0], hubapi.ListOptions{
				Page:     page,
				PageSize: a.cfg.PageSize,
				Q:        q,
				Status:   status,
			})
			if err != nil {
				return err
			}
			return a.out(cmd).print(p)
		},
	}
	cmd.Flags().StringVarP(&q, "query", "q", "", "text filter")
	cmd.Flags().StringVar(&status, "status", "", "status filter")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <entity> <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.client.Get(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return a.out(cmd).print(raw)
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entity> <id>...",
		Short: "Delete records",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed bool
			for _, id := range args[1:] {
				if err := a.client.Delete(cmd.Context(), args[0], id); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", id, err)
					failed = true
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %s\n", args[0], id)
			}
			if failed {
				return ErrRejected
			}
			return nil
		},
	}
}

func (a *app) applyCmd() *cobra.Command {
	var (
		file   string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "apply -f <file>",
		Short: "Create or update records from a YAML manifest",
		Long: "Every item is checked against the same rules as the admin wizards.\n" +
			"Items with an id are updated, the rest are created. Entities: " + strings.Join(Entities(), ", ") + ".",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			m, err := ReadManifest(in)
			if err != nil {
				return err
			}
			res := Apply(cmd.Context(), a.client, m, dryRun)
			if err := a.out(cmd).print(res); err != nil {
				return err
			}
			if Failed(res) {
				return ErrRejected
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "manifest path, - for stdin")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate only")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (a *app) bulkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bulk <hub> <action> <id>...",
		Short: "Run a bulk action (delete, activate, ...) on several records",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client.Bulk(cmd.Context(), args[0], args[1], args[2:])
			if err != nil {
				return err
			}
			if err := a.out(cmd).print(res); err != nil {
				return err
			}
			if len(res.Failed) > 0 {
				return ErrRejected
			}
			return nil
		},
	}
}

// modeCmd works offline; it shows how a hub path is routed.
func modeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mode <path>",
		Short: "Print the view mode a hub path resolves to",
		Args:  cobra.ExactArgs(1),
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := viewmode.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m, m.Path())
			return nil
		},
	}
}
