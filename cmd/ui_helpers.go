package cmd

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"

	"helpdesk/cli/internal/backend"
	"helpdesk/cli/internal/httperrors"
	"helpdesk/cli/internal/logging"
)

// errReported is returned once a failure has already been shown to the user.
var errReported = errors.New("failure already reported")

// fail shows err for the given action and returns errReported. Requests that
// never reached the service get network troubleshooting hints; everything else
// is rendered by kind.
func fail(action string, err error) error {
	if err == nil {
		return nil
	}
	if httperrors.IsNetworkError(err) {
		baseURL := ""
		if app != nil {
			baseURL = app.cfg.BaseURL
			app.log.Error("request did not reach the service", err, map[string]interface{}{"action": action})
		}
		_ = httperrors.FormatNetworkError(err, action, baseURL)
		return errReported
	}
	logging.PresentFailure(action, err)
	return errReported
}

var spinnerFrames = []string{"|", "/", "-", "\\"}

// withSpinner shows a stick-style spinner next to text while fn runs. The line
// is removed when fn returns.
func withSpinner(text string, fn func() error) error {
	cursor.Hide()
	defer cursor.Show()

	area, err := pterm.DefaultArea.WithRemoveWhenDone(true).Start()
	if err != nil {
		return fn()
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(120 * time.Millisecond)
		defer t.Stop()
		i := 0
		area.Update(fmt.Sprintf("%s %s", spinnerFrames[0], text))
		for {
			select {
			case <-t.C:
				i++
				area.Update(fmt.Sprintf("%s %s", spinnerFrames[i%len(spinnerFrames)], text))
			case <-stop:
				return
			}
		}
	}()

	err = fn()
	close(stop)
	wg.Wait()
	_ = area.Stop()
	return err
}

// renderQueries prints qs as a table under a section title.
func renderQueries(title string, qs []backend.Query) {
	pterm.DefaultSection.Println(fmt.Sprintf("%s (%d)", title, len(qs)))
	if len(qs) == 0 {
		pterm.Println(pterm.Gray("  nothing here"))
		pterm.Println()
		return
	}

	data := pterm.TableData{{"ID", "Created", "Subject", "Question", "Answer", "Answered by"}}
	for _, q := range qs {
		answer, by := "-", "-"
		if q.Answered() {
			answer = truncate(*q.Answer, 40)
			by = q.FacultyName
		}
		data = append(data, []string{
			string(q.ID),
			formatTime(q.CreatedAt.Time),
			truncate(q.Subject, 30),
			truncate(q.Content, 40),
			answer,
			by,
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Println()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
