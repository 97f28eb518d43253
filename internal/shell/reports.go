package shell

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/report"
)

func (s *Shell) reportsMenu(ctx context.Context) error {
	return s.subMenu(ctx, "Generate Reports", []menuItem{
		{"Monthly Report", s.monthlyReport},
		{"Yearly Report", s.yearlyReport},
		{"Category Limits", s.categoryReport},
	})
}

func (s *Shell) monthlyReport(_ context.Context) error {
	s.println(cli.TitleStyle.Render(cli.ChartIcon + " Monthly Report"))
	return RenderPeriods(s.out, report.Monthly(s.ledger.Transactions()))
}

func (s *Shell) yearlyReport(_ context.Context) error {
	s.println(cli.TitleStyle.Render(cli.ChartIcon + " Yearly Report"))
	return RenderPeriods(s.out, report.Yearly(s.ledger.Transactions()))
}

func (s *Shell) categoryReport(_ context.Context) error {
	s.println(cli.TitleStyle.Render(cli.ChartIcon + " Category Limits"))
	return RenderCategoryUsage(s.out, report.CategorySpending(s.ledger.Transactions(), s.ledger.Categories()))
}

// RenderSummary writes the totals box. Goal progress is added only when a goal is set.
func RenderSummary(w io.Writer, sum report.Summary) error {
	lines := []string{
		fmt.Sprintf("Total Income: %s", cli.FormatMoney(sum.TotalIncome)),
		fmt.Sprintf("Total Expenses: %s", cli.FormatMoney(sum.TotalExpenses)),
		fmt.Sprintf("Balance: %s", cli.FormatMoney(sum.Balance)),
		fmt.Sprintf("Savings Goal: %s", cli.FormatMoney(sum.SavingsGoal)),
	}
	if sum.GoalSet {
		if sum.GoalMet() {
			lines = append(lines, cli.SuccessStyle.Render("Congratulations! You've reached your savings goal."))
		} else {
			lines = append(lines, fmt.Sprintf("You need %s more to reach your savings goal.", cli.FormatMoney(sum.GoalGap)))
		}
	}

	_, err := fmt.Fprintln(w, cli.RenderBox("Summary", joinLines(lines)))
	return err
}

// RenderPeriods writes one table row per period in the order given.
func RenderPeriods(w io.Writer, periods []report.PeriodTotals) error {
	if len(periods) == 0 {
		_, err := fmt.Fprintln(w, cli.FormatInfo("No transactions recorded yet."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header(tw, "PERIOD", "INCOME", "EXPENSES", "BALANCE", "COUNT")
	for _, p := range periods {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			p.Label(),
			cli.FormatMoney(p.Income),
			cli.FormatMoney(p.Expenses),
			cli.FormatMoney(p.Balance),
			p.Count)
	}
	return tw.Flush()
}

// RenderCategoryUsage writes spending against each category's limit.
func RenderCategoryUsage(w io.Writer, usage []report.CategoryUsage) error {
	if len(usage) == 0 {
		_, err := fmt.Fprintln(w, cli.FormatInfo("No categories defined."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header(tw, "CATEGORY", "SPENT", "LIMIT", "REMAINING", "STATUS")
	for _, u := range usage {
		limit, remaining, status := "none", "-", "ok"
		if !u.Category.Unbounded() {
			limit = cli.FormatMoney(u.Category.SpendingLimit.Decimal)
			remaining = cli.FormatMoney(u.Remaining())
		}
		if u.OverLimit() {
			status = "over limit"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			u.Category.Name,
			cli.FormatMoney(u.Spent),
			limit,
			remaining,
			status)
	}
	return tw.Flush()
}

func header(tw *tabwriter.Writer, columns ...string) {
	styled := make([]string, len(columns))
	for i, c := range columns {
		styled[i] = cli.TableHeaderStyle.Render(c)
	}
	fmt.Fprintln(tw, strings.Join(styled, "\t"))
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
