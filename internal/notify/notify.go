package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"opensearch-cleanup/internal/formatters"
)

const (
	statusOK     = ":white_check_mark:"
	statusFailed = ":x:"

	colorOK     = "#2EB67D"
	colorFailed = "#E01E5A"
)

// Attachment is the Slack-compatible block of the webhook payload.
type Attachment struct {
	Color     string `json:"color"`
	Text      string `json:"text"`
	Title     string `json:"title"`
	TitleLink string `json:"title_link,omitempty"`
}

type payload struct {
	Attachments []Attachment `json:"attachments"`
}

// Notifier delivers run reports to an incoming-webhook endpoint.
type Notifier struct {
	WebhookURL string
	TitleLink  string
	Client     *http.Client
}

func New(webhookURL, titleLink string) *Notifier {
	return &Notifier{
		WebhookURL: webhookURL,
		TitleLink:  titleLink,
		Client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Send renders the run report into a single attachment and posts it. A
// non-2xx response is an error; the caller decides whether that fails the
// run.
func (n *Notifier) Send(ctx context.Context, report formatters.RunReport) error {
	attachment := BuildAttachment(report, n.TitleLink)
	body, err := json.Marshal(payload{Attachments: []Attachment{attachment}})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("notification response is not successful: %s: %s", resp.Status, respBody)
	}
	return nil
}

// BuildAttachment composes the notification: per-service status lines, the
// pre-cleanup summaries, then per-index deletion details.
func BuildAttachment(report formatters.RunReport, titleLink string) Attachment {
	var shortDescriptions []string
	var reportTexts []string
	var deletedIndexes []string

	for _, service := range report.Services {
		status := statusOK
		if service.Failed() {
			status = statusFailed
		}
		shortDescriptions = append(shortDescriptions, fmt.Sprintf("%s - %s", service.Message, status))

		if len(service.Summary) > 0 {
			var summaryLines []string
			for _, line := range service.Summary {
				summaryLines = append(summaryLines, fmt.Sprintf("%s: %s", line.Name, line.Size))
			}
			reportTexts = append(reportTexts,
				fmt.Sprintf("Summary for %s (pre-cleanup):\n%s\n", service.Service, strings.Join(summaryLines, "\n")))
		}

		for _, deleted := range service.Deletes {
			if deleted.Success {
				deletedIndexes = append(deletedIndexes,
					fmt.Sprintf("%s - %s (%s) - size: %d bytes", statusOK, deleted.Name, service.Service, deleted.SizeBytes))
			} else {
				deletedIndexes = append(deletedIndexes,
					fmt.Sprintf("%s - %s (%s)", statusFailed, deleted.Name, service.Service))
			}
		}
	}

	text := strings.Join(shortDescriptions, "\n")
	if len(reportTexts) > 0 {
		text += "\n\n" + strings.Join(reportTexts, "\n")
	}
	if len(deletedIndexes) > 0 {
		text += "\n\nDetails:\n\n" + strings.Join(deletedIndexes, "\n")
	} else {
		text += "\n\nNot found any old indices by pre-defined rules."
	}

	color := colorOK
	if report.Failed() {
		color = colorFailed
	}

	return Attachment{
		Title:     fmt.Sprintf("%s - Opensearch index cleanup", report.Project),
		TitleLink: titleLink,
		Text:      text,
		Color:     color,
	}
}
