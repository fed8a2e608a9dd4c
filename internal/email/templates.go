package email

import (
	"fmt"
	"strings"
)

type Message struct {
	Subject string
	Body    string
}

type ResultDetails struct {
	LeagueName string
	HomeTeam   string
	AwayTeam   string
	HomeScore  int64
	AwayScore  int64
	Date       string
	Decided    string // "", "overtime" or "shootout"
	Venue      string
}

type DigestMatch struct {
	Date     string
	Time     string
	HomeTeam string
	AwayTeam string
	Venue    string
}

// BuildSubscriptionConfirmation builds the double opt-in email with the
// confirmation link for a new subscriber.
func BuildSubscriptionConfirmation(leagueName, confirmURL string) Message {
	leagueName = strings.TrimSpace(leagueName)
	if leagueName == "" {
		leagueName = "the league"
	}

	lines := []string{
		fmt.Sprintf("Thanks for subscribing to %s match updates.", leagueName),
		"",
		"Confirm your subscription by opening this link:",
		confirmURL,
		"",
		"If you did not request this, you can ignore this email.",
	}

	return Message{
		Subject: fmt.Sprintf("Confirm your %s subscription", leagueName),
		Body:    strings.Join(lines, "\n"),
	}
}

// BuildResultNotification builds the email announcing a freshly published
// match result.
func BuildResultNotification(details ResultDetails) Message {
	leagueName := strings.TrimSpace(details.LeagueName)
	if leagueName == "" {
		leagueName = "the league"
	}

	score := fmt.Sprintf("%s %d : %d %s", details.HomeTeam, details.HomeScore, details.AwayScore, details.AwayTeam)
	subject := fmt.Sprintf("Final: %s", score)

	lines := []string{
		fmt.Sprintf("A new result has been published in %s.", leagueName),
		"",
		score,
	}
	switch details.Decided {
	case "overtime":
		lines = append(lines, "Decided in overtime.")
	case "shootout":
		lines = append(lines, "Decided in a shootout.")
	}
	if date := strings.TrimSpace(details.Date); date != "" {
		lines = append(lines, fmt.Sprintf("Date: %s", date))
	}
	if venue := strings.TrimSpace(details.Venue); venue != "" {
		lines = append(lines, fmt.Sprintf("Venue: %s", venue))
	}

	return Message{
		Subject: subject,
		Body:    strings.Join(lines, "\n"),
	}
}

// BuildWeeklyDigest builds the scheduled digest listing upcoming matches.
// Returns a zero Message when there is nothing to announce.
func BuildWeeklyDigest(leagueName string, matches []DigestMatch) Message {
	if len(matches) == 0 {
		return Message{}
	}
	leagueName = strings.TrimSpace(leagueName)
	if leagueName == "" {
		leagueName = "the league"
	}

	lines := []string{
		fmt.Sprintf("Upcoming matches in %s:", leagueName),
		"",
	}
	for _, m := range matches {
		line := fmt.Sprintf("%s %s  %s vs %s", m.Date, m.Time, m.HomeTeam, m.AwayTeam)
		if venue := strings.TrimSpace(m.Venue); venue != "" {
			line = fmt.Sprintf("%s (%s)", line, venue)
		}
		lines = append(lines, line)
	}

	return Message{
		Subject: fmt.Sprintf("%s: this week's matches", leagueName),
		Body:    strings.Join(lines, "\n"),
	}
}
