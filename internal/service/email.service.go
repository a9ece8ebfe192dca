package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"trendalgo/internal/domain"
	"trendalgo/internal/logger"
	"trendalgo/internal/repository"
)

// EmailService renders the run report and sends it. It does not compute
// anything; the report is passed in fully built.
type EmailService interface {
	SendReportEmail(ctx context.Context, report domain.RunReport, toAddresses []string) error
	// GenerateReportEmail returns the subject, HTML body and plain text body
	GenerateReportEmail(report domain.RunReport) (string, string, string, error)
}

type emailServiceHandler struct {
	EmailRepository repository.EmailRepository
}

func NewEmailService(
	emailRepository repository.EmailRepository,
) EmailService {
	return &emailServiceHandler{
		EmailRepository: emailRepository,
	}
}

var reportTemplate = template.Must(template.New("report").Parse(
	`Portfolio Value: {{ .PortfolioValue }}<br>` +
		`Market Condition: {{ .Condition }}<br>` +
		`{{ .Month }} YoY Retail and Food Services Sales Change: {{ .YearOverYear }}<br>` +
		`{{ range .Targets }}<a clicktracking=off href="https://finviz.com/quote.ashx?t={{ .Symbol }}">{{ .Symbol }}</a>: {{ .Quantity }} ({{ .Action }}){{ if .Status }} [{{ .Status }}]{{ end }}<br>{{ end }}`,
))

type reportTargetView struct {
	Symbol   string
	Quantity string
	Action   string
	Status   string
}

type reportView struct {
	PortfolioValue string
	Condition      string
	Month          string
	YearOverYear   string
	Targets        []reportTargetView
}

func newReportView(report domain.RunReport) reportView {
	targets := []reportTargetView{}
	for _, t := range report.Targets {
		status := ""
		if t.Status != domain.OrderStatusSubmitted && t.Status != domain.OrderStatusSimulated {
			status = string(t.Status)
		}
		targets = append(targets, reportTargetView{
			Symbol:   t.Target.Symbol,
			Quantity: t.Target.Quantity.String(),
			Action:   string(t.Target.Action),
			Status:   status,
		})
	}

	return reportView{
		PortfolioValue: report.PortfolioValue.StringFixed(2),
		Condition:      report.Market.Condition(),
		Month:          report.Date.Format("January"),
		YearOverYear:   fmt.Sprintf("%g", report.Macro.YearOverYear),
		Targets:        targets,
	}
}

func reportSubject(live bool) string {
	status := "Test"
	if live {
		status = "Live"
	}
	return fmt.Sprintf("Monthly Trend Algo Report - %s", status)
}

func (h *emailServiceHandler) GenerateReportEmail(report domain.RunReport) (string, string, string, error) {
	view := newReportView(report)

	body := bytes.Buffer{}
	if err := reportTemplate.Execute(&body, view); err != nil {
		return "", "", "", fmt.Errorf("failed to render report: %w", err)
	}

	plain := strings.Builder{}
	fmt.Fprintf(&plain, "Portfolio Value: %s\n", view.PortfolioValue)
	fmt.Fprintf(&plain, "Market Condition: %s\n", view.Condition)
	fmt.Fprintf(&plain, "%s YoY Retail and Food Services Sales Change: %s\n", view.Month, view.YearOverYear)
	for _, t := range view.Targets {
		fmt.Fprintf(&plain, "%s: %s (%s)", t.Symbol, t.Quantity, t.Action)
		if t.Status != "" {
			fmt.Fprintf(&plain, " [%s]", t.Status)
		}
		plain.WriteString("\n")
	}

	return reportSubject(report.Live), body.String(), plain.String(), nil
}

// SendReportEmail sends one email per recipient. A failed recipient
// doesn't stop the others.
func (h *emailServiceHandler) SendReportEmail(ctx context.Context, report domain.RunReport, toAddresses []string) error {
	subject, body, _, err := h.GenerateReportEmail(report)
	if err != nil {
		return err
	}

	errs := []error{}
	for _, to := range toAddresses {
		to = strings.TrimSpace(to)
		if to == "" {
			continue
		}
		if err := h.EmailRepository.SendEmail(ctx, to, subject, body); err != nil {
			logger.FromContext(ctx).Errorf("failed to send report to %s: %v", to, err)
			errs = append(errs, fmt.Errorf("failed to send report to %s: %w", to, err))
		}
	}

	return errors.Join(errs...)
}
