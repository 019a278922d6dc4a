package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	allocationdomain "github.com/smallbiznis/roommanager/internal/allocation/domain"
	allocationservice "github.com/smallbiznis/roommanager/internal/allocation/service"
	customerdomain "github.com/smallbiznis/roommanager/internal/customer/domain"
	"github.com/smallbiznis/roommanager/internal/customer/index"
	"github.com/smallbiznis/roommanager/internal/customer/source"
	"github.com/smallbiznis/roommanager/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type allocateOptions struct {
	premium   int
	economy   int
	customers string
	threshold string
	currency  string
	output    string
	logLevel  string
}

var allocateOpts allocateOptions

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Allocate rooms for the given capacities",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAllocate(cmd.Context(), cmd.OutOrStdout(), allocateOpts)
	},
}

func init() {
	f := allocateCmd.Flags()
	f.IntVar(&allocateOpts.premium, "premium", 0, "Free premium rooms")
	f.IntVar(&allocateOpts.economy, "economy", 0, "Free economy rooms")
	f.StringVar(&allocateOpts.customers, "customers", "", "JSON file with customer offers (default: built-in offers)")
	f.StringVar(&allocateOpts.threshold, "threshold", "100", "Minimum premium offer")
	f.StringVar(&allocateOpts.currency, "currency", allocationdomain.DefaultCurrency, "Currency label")
	f.StringVarP(&allocateOpts.output, "output", "o", "json", "Output format: json or yaml")
	f.StringVar(&allocateOpts.logLevel, "log-level", "warn", "Log level written to stderr")
	rootCmd.AddCommand(allocateCmd)
}

type outcomeView struct {
	RoomType       string `json:"roomType" yaml:"roomType"`
	CustomersCount int    `json:"customersCount" yaml:"customersCount"`
	TotalPrice     price  `json:"totalPrice" yaml:"totalPrice"`
	Currency       string `json:"currency" yaml:"currency"`
}

// price is an exact decimal rendered as a bare number in both formats.
type price json.Number

func (p price) MarshalJSON() ([]byte, error) {
	return json.Marshal(json.Number(p))
}

func (p *price) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = price(n)
	return nil
}

// MarshalYAML emits the digits verbatim; yaml.v3 would otherwise round through float64.
func (p price) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: string(p)}, nil
}

func runAllocate(ctx context.Context, out io.Writer, opts allocateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.premium < 0 || opts.economy < 0 {
		return errors.New("--premium and --economy must be greater than or equal to 0")
	}
	format := strings.ToLower(strings.TrimSpace(opts.output))
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported output %q, want json or yaml", opts.output)
	}
	threshold, err := decimal.NewFromString(strings.TrimSpace(opts.threshold))
	if err != nil {
		return fmt.Errorf("invalid --threshold %q: %w", opts.threshold, err)
	}

	log, err := logger.New(opts.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var src customerdomain.Source = source.NewStatic()
	if strings.TrimSpace(opts.customers) != "" {
		src = source.NewFile(opts.customers)
	}
	prices, err := src.Load(ctx)
	if err != nil {
		return err
	}
	sorted, err := index.Build(prices)
	if err != nil {
		return err
	}
	holder := index.NewHolder()
	holder.Store(sorted)

	log.Debug("customers loaded", zap.String("source", src.Name()), zap.Int("entries", sorted.Len()))

	engine, err := allocationservice.NewEngine(holder, threshold, opts.currency, log, nil)
	if err != nil {
		return err
	}
	outcomes, err := engine.Allocate(ctx, allocationdomain.Request{Premium: opts.premium, Economy: opts.economy})
	if err != nil {
		return err
	}

	views := make([]outcomeView, 0, len(outcomes))
	for _, o := range outcomes {
		views = append(views, outcomeView{
			RoomType:       string(o.RoomType),
			CustomersCount: o.CustomersCount,
			TotalPrice:     price(o.TotalPrice.String()),
			Currency:       o.Currency,
		})
	}

	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(views)
}
