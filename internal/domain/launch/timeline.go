package launch

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Phase groups timeline tasks belonging to one stage of the launch.
type Phase struct {
	Phase string `json:"phase"`
	Tasks []Task `json:"tasks"`
}

// Task is a single timeline entry with its schedule and acceptance criteria.
type Task struct {
	Name            string `json:"name"`
	DueDate         string `json:"due_date"`
	Priority        string `json:"priority"`
	TimeEstimate    string `json:"time_estimate"`
	Dependencies    string `json:"dependencies"`
	SuccessCriteria string `json:"success_criteria"`
}

// dateLayouts are tried in order when parsing an absolute launch date.
var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"02/01/2006",
	"2 January 2006",
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseLaunchDate resolves a natural-language launch date relative to now.
// Accepted forms: "next <weekday>", a bare number of days, and the absolute
// layouts above. The result is identical for identical (input, now) pairs.
func ParseLaunchDate(input string, now time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return time.Time{}, fmt.Errorf("empty launch date")
	}

	if rest, ok := strings.CutPrefix(s, "next "); ok {
		day, known := weekdays[strings.TrimSpace(rest)]
		if !known {
			return time.Time{}, fmt.Errorf("unknown weekday %q", rest)
		}
		ahead := (int(day) - int(now.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		return midnight(now).AddDate(0, 0, ahead), nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		return midnight(now).AddDate(0, 0, n), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse launch date %q", input)
}

// DaysUntil returns whole days from now to the launch date, ignoring
// time-of-day on both ends.
func DaysUntil(now, launchDate time.Time) int {
	return int(midnight(launchDate).Sub(midnight(now)).Hours() / 24)
}

// FormatDate renders a date for user-facing display.
func FormatDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BuildTimeline constructs the phased task list for a launch the given
// number of days away. The structure is a pure function of its inputs:
// identical inputs yield identical timelines.
func BuildTimeline(productName string, daysUntilLaunch int) []Phase {
	var timeline []Phase

	if daysUntilLaunch >= 14 {
		timeline = append(timeline, Phase{
			Phase: "Pre-launch (2+ weeks before)",
			Tasks: []Task{
				{
					Name:            "Create Product Hunt account and profile",
					DueDate:         dueDays(daysUntilLaunch - 14),
					Priority:        "High",
					TimeEstimate:    "1 hour",
					Dependencies:    "None",
					SuccessCriteria: "Account created with complete profile",
				},
				{
					Name:            "Prepare product assets (logo, screenshots, demo video)",
					DueDate:         dueDays(daysUntilLaunch - 10),
					Priority:        "High",
					TimeEstimate:    "4-6 hours",
					Dependencies:    "None",
					SuccessCriteria: "All visual assets ready",
				},
			},
		})
	}

	if daysUntilLaunch >= 7 {
		timeline = append(timeline, Phase{
			Phase: "Final preparation (1 week before)",
			Tasks: []Task{
				{
					Name:            "Write compelling product description and tagline",
					DueDate:         dueDays(daysUntilLaunch - 7),
					Priority:        "High",
					TimeEstimate:    "2-3 hours",
					Dependencies:    "Product assets ready",
					SuccessCriteria: "Description approved and ready",
				},
				{
					Name:            "Identify and reach out to potential hunters",
					DueDate:         dueDays(daysUntilLaunch - 5),
					Priority:        "High",
					TimeEstimate:    "3-4 hours",
					Dependencies:    "None",
					SuccessCriteria: "At least 3 hunters confirmed",
				},
			},
		})
	}

	timeline = append(timeline, Phase{
		Phase: "Launch day",
		Tasks: []Task{
			{
				Name:            "Submit " + productName + " to Product Hunt",
				DueDate:         "Launch day (12:01 AM PST)",
				Priority:        "High",
				TimeEstimate:    "30 minutes",
				Dependencies:    "All assets and hunters ready",
				SuccessCriteria: "Product live on Product Hunt",
			},
			{
				Name:            "Share on social media and personal networks",
				DueDate:         "Launch day (morning)",
				Priority:        "High",
				TimeEstimate:    "2-3 hours",
				Dependencies:    "Product live",
				SuccessCriteria: "Initial momentum generated",
			},
		},
	})

	return timeline
}

// Milestones extracts the top high-priority tasks as milestone strings.
func Milestones(timeline []Phase) []string {
	var milestones []string
	for _, phase := range timeline {
		for _, task := range phase.Tasks {
			if task.Priority == "High" {
				milestones = append(milestones, task.Name+" - "+task.DueDate)
			}
		}
	}
	if len(milestones) > 5 {
		milestones = milestones[:5]
	}
	return milestones
}

func dueDays(days int) string {
	if days <= 0 {
		return "Today"
	}
	if days == 1 {
		return "1 day before launch"
	}
	return fmt.Sprintf("%d days before launch", days)
}
