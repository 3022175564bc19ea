package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/studentledger/internal/adapter/http/dto"
	"github.com/iho/studentledger/internal/domain"
	"github.com/iho/studentledger/internal/report"
)

type rootOptions struct {
	baseURL string
	token   string
	timeout time.Duration
	asJSON  bool
}

func (o *rootOptions) client() *apiClient {
	return newAPIClient(o.baseURL, o.token, o.timeout)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "studentledger-cli",
		Short:         "Student ledger CLI tool",
		Long:          `A command line interface for recording income and expenses against the studentledger API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", envOr("STUDENTLEDGER_URL", "http://localhost:8080"), "Base URL of the studentledger API")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("STUDENTLEDGER_TOKEN"), "Bearer token when authentication is enabled")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "Print raw JSON")

	rootCmd.AddCommand(
		addCmd(opts),
		transferCmd(opts),
		deleteCmd(opts),
		listCmd(opts),
		summaryCmd(opts),
		reportCmd(opts),
	)

	return rootCmd
}

func addCmd(opts *rootOptions) *cobra.Command {
	var req dto.CreateTransactionRequest
	var amount, percent string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense",
		Example: `  studentledger-cli add --type Expense --category Tuition --amount 5000
  studentledger-cli add --type Income --category Scholarship --amount 1000 --tuition-percent 60`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Amount = dto.FlexString(amount)
			req.TuitionPercent = dto.FlexString(percent)

			records, err := opts.client().createTransaction(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), opts, records)
		},
	}

	cmd.Flags().StringVar(&req.Type, "type", "", "Income or Expense")
	cmd.Flags().StringVar(&req.Category, "category", "", "Category label")
	cmd.Flags().StringVar(&req.Description, "description", "", "Free-text description")
	cmd.Flags().StringVar(&req.Date, "date", time.Now().Format(domain.DateLayout), "Date as YYYY-MM-DD")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount")
	cmd.Flags().StringVar(&percent, "tuition-percent", "0", "Share of an income applied to tuition (0-100)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func transferCmd(opts *rootOptions) *cobra.Command {
	var req dto.TuitionTransferRequest
	var amount string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move funds from the general balance to tuition",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Amount = dto.FlexString(amount)

			records, err := opts.client().transfer(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), opts, records)
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	cmd.Flags().StringVar(&req.Date, "date", "", "Date as YYYY-MM-DD (defaults to today)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func deleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().deleteTransaction(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func listCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := opts.client().listTransactions(cmd.Context())
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), opts, records)
		},
	}
}

func summaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show tuition and general fund totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.client().summary(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return printJSON(out, s)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Total tuition cost\t%s\n", report.FormatCurrency(s.TotalTuitionCost))
			fmt.Fprintf(tw, "Tuition aid applied\t%s\n", report.FormatCurrency(s.TuitionAidApplied))
			fmt.Fprintf(tw, "Tuition remaining\t%s\n", report.FormatCurrency(s.TuitionRemaining))
			fmt.Fprintf(tw, "General income\t%s\n", report.FormatCurrency(s.GeneralIncome))
			fmt.Fprintf(tw, "General expenses\t%s\n", report.FormatCurrency(s.GeneralExpenses))
			fmt.Fprintf(tw, "General balance\t%s\n", report.FormatCurrency(s.GeneralBalance))
			return tw.Flush()
		},
	}
}

func reportCmd(opts *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Download the PDF report",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}

			n, err := opts.client().report(cmd.Context(), f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				os.Remove(outPath)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", outPath, n)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "financial_report.pdf", "Output file")

	return cmd
}

func printRecords(w io.Writer, opts *rootOptions, records []*dto.TransactionResponse) error {
	if opts.asJSON {
		return printJSON(w, records)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tCATEGORY\tDESCRIPTION\tAMOUNT\tALLOCATION")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Date, r.Type, r.Category,
			truncate(r.Description, 30),
			report.FormatCurrency(r.Amount),
			r.Allocation,
		)
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
