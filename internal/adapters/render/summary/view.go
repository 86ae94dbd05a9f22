package summary

import (
	"fmt"
	"time"

	"github.com/bnema/social-accounts-cli/internal/application"
	"github.com/bnema/social-accounts-cli/internal/domain"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

const (
	defaultHistoryLimit = 10
	historyWhenWidth    = 20
	historyActionWidth  = 48
)

type RenderOptions struct {
	Now time.Time
	// HistoryLimit caps the activity section; zero means the default, negative shows everything.
	HistoryLimit int
}

func renderView(summary application.Summary, opts RenderOptions, s styles) string {
	account := summary.Account

	lines := []string{
		s.title.Render(fmt.Sprintf("%s (#%s)", account.Profile.Name, account.ID)),
		s.header.Render(fmt.Sprintf("login: %s | last online: %s", account.Credentials.Login, domain.FormatLastOnline(account.LastOnline))),
		s.section.Render(renderProfile(account.Profile, opts.Now, s)),
		s.section.Render(renderPeers("Friends", account.Friends, summary.Names, s.peer, s)),
		s.section.Render(renderPeers("Incoming requests", account.IncomingRequests, summary.Names, s.peer, s)),
		s.section.Render(renderPeers("Outgoing requests", account.OutgoingRequests, summary.Names, s.peer, s)),
		s.section.Render(renderPeers("Blocked", account.Blocked, summary.Names, s.blocked, s)),
		s.section.Render(renderHistory(summary.History, summary.Names, opts.HistoryLimit, s)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProfile(profile domain.Profile, now time.Time, s styles) string {
	birthday := "hidden"
	if profile.Birthday != nil {
		birthday = profile.Birthday.Format(domain.BirthdayLayout)
	}
	status := "hidden"
	if profile.Status != "" {
		status = profile.Status
	}

	lines := []string{
		field("birthday", birthday, s),
		field("status", status, s),
	}

	if profile.GraduationYear != nil {
		graduated := "no"
		if now.IsZero() {
			graduated = "unknown"
		} else if isGraduate := profile.IsGraduate(now); isGraduate != nil && *isGraduate {
			graduated = "yes"
		}
		lines = append(lines, field("graduation", fmt.Sprintf("%d (graduated: %s)", *profile.GraduationYear, graduated), s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func field(label, value string, s styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render(label+":"), " ", s.detail.Render(value))
}

func renderPeers(title string, ids []domain.AccountID, names map[domain.AccountID]string, style lipgloss.Style, s styles) string {
	lines := []string{s.heading.Render(fmt.Sprintf("%s (%d)", title, len(ids)))}
	if len(ids) == 0 {
		lines = append(lines, s.empty.Render("  none"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, id := range ids {
		lines = append(lines, "  "+peerLabel(id, names, style, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func peerLabel(id domain.AccountID, names map[domain.AccountID]string, style lipgloss.Style, s styles) string {
	name, ok := names[id]
	if !ok {
		name = "unknown"
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, style.Render(name), " ", s.peerID.Render("#"+id.String()))
}

func renderHistory(history []domain.HistoryEntry, names map[domain.AccountID]string, limit int, s styles) string {
	if limit == 0 {
		limit = defaultHistoryLimit
	}

	lines := []string{s.heading.Render(fmt.Sprintf("Recent activity (%d total)", len(history)))}
	if len(history) == 0 {
		lines = append(lines, s.empty.Render("  none"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	shown := history
	if limit > 0 && len(history) > limit {
		shown = history[len(history)-limit:]
		lines = append(lines, s.truncate.Render(fmt.Sprintf("  ... %d earlier entries", len(history)-limit)))
	}

	lines = append(lines, historyTable(shown, names, s).View())

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func historyTable(entries []domain.HistoryEntry, names map[domain.AccountID]string, s styles) table.Model {
	rows := lo.Map(entries, func(entry domain.HistoryEntry, _ int) table.Row {
		return table.Row{domain.FormatLastOnline(entry.At), historyLabel(entry, names)}
	})

	tableStyles := table.DefaultStyles()
	tableStyles.Header = s.heading.Padding(0, 1)
	tableStyles.Cell = s.action.Padding(0, 1)
	tableStyles.Selected = lipgloss.NewStyle()

	return table.New(
		table.WithColumns([]table.Column{
			{Title: "When", Width: historyWhenWidth},
			{Title: "Action", Width: historyActionWidth},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
		table.WithStyles(tableStyles),
	)
}

func historyLabel(entry domain.HistoryEntry, names map[domain.AccountID]string) string {
	label := entry.Label()
	if entry.Peer != 0 {
		if name, ok := names[entry.Peer]; ok {
			label = fmt.Sprintf("%s (%s)", label, name)
		}
	}

	return label
}
