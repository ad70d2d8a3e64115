package club

import (
	"context"
	"errors"
	"fmt"
	"juniorguru-sync/internal/components/telemetry"
	"juniorguru-sync/internal/db"
	"math/rand/v2"
	"time"
)

const (
	report_weekly_plans_none     = "weekly-plans.no-previous"
	report_weekly_plans_existing = "weekly-plans.existing"
)

const weeklyPlansContent = "🗓️ Jak jsi na tom? Napiš krátký _update_! Je jedno, jestli jde o učení, práci, nebo vlastní projekt. " +
	"Klidně česky, slovensky, nebo si procvič angličtinu 🙂 " +
	"\n\n" +
	"💭 Proč? Uspořádáš si myšlenky. Uvědomíš si, jak se posunuješ. Dáš do slov, čím teď procházíš. " +
	"Všimneš si, s čím zápasí ostatní a třeba uvidíš, že si nějak můžete pomoci. " +
	"A někdo když veřejně přislíbí, že něco udělá, tak se k tomu pak spíš dokope. " +
	// zero width space keeps a margin between the content and the embeds
	"\n\u200b"

const weeklyPlansTemplate = "<:successkid:842730583293558795> Co se mi podařilo minulý týden? / What did I accomplish last week?" +
	"\n\n" +
	"🛠️ Na čem teď dělám? Čemu se budu věnovat tento týden? / What am I going to focus on this week?" +
	"\n\n" +
	"🔥 Co mě pálí? Řeším nějaký problém? / Any problems?"

const (
	colorTeal         = 0x1abc9c
	weeklyAutoArchive = 7 * 24 * time.Hour
)

var ErrNoWisdoms = errors.New("no wisdoms to pick from")

type WisdomStore interface {
	ListWisdoms(ctx context.Context) ([]db.Wisdom, error)
}

// WeeklyPlans kicks off a forum thread every week where members share plans.
type WeeklyPlans struct {
	store   WisdomStore
	discord Discord
	tel     telemetry.API
	// pick returns a random index in [0, n).
	pick func(n int) int
}

func NewWeeklyPlans(store WisdomStore, discord Discord, tel telemetry.API) WeeklyPlans {
	return WeeklyPlans{
		store:   store,
		discord: discord,
		tel:     telemetry.NewScopedAPI("club", tel),
		pick:    rand.IntN,
	}
}

// WeeklyPlansPost builds the thread for the week starting on monday.
func WeeklyPlansPost(monday time.Time, wisdom db.Wisdom) ForumPost {
	return ForumPost{
		Name: WeekName(monday),
		Message: Message{
			Content: weeklyPlansContent,
			Embeds: []Embed{
				{
					Title:       "Šablona",
					Description: weeklyPlansTemplate,
					Color:       colorTeal,
				},
				{
					Title:       "Moudro týdne",
					Description: "„" + wisdom.Text + "“",
					Footer:      "— " + wisdom.Name,
				},
			},
		},
		AutoArchive: weeklyAutoArchive,
	}
}

// Run creates the thread for the week of today unless the newest thread in
// the channel already covers it. It reports whether a thread was created.
func (w WeeklyPlans) Run(ctx context.Context, channelID string, today time.Time) (bool, error) {
	monday := Monday(today)

	threads, err := w.discord.ForumThreads(ctx, channelID)
	if err != nil {
		return false, fmt.Errorf("list forum threads: %w", err)
	}
	if len(threads) == 0 {
		w.tel.ReportWarning(report_weekly_plans_none, "no previous weekly plans found", channelID)
	} else {
		threadMonday, err := ParseWeek(threads[0].Name, today.Year())
		if err != nil {
			return false, err
		}
		if threadMonday.Equal(monday) {
			w.tel.ReportDebug(report_weekly_plans_existing, threads[0].Name)
			return false, nil
		}
	}

	wisdoms, err := w.store.ListWisdoms(ctx)
	if err != nil {
		return false, fmt.Errorf("list wisdoms: %w", err)
	}
	if len(wisdoms) == 0 {
		return false, ErrNoWisdoms
	}
	wisdom := wisdoms[w.pick(len(wisdoms))]
	w.tel.ReportDebug("selected wisdom", wisdom.Name, wisdom.Text)

	err = w.discord.CreateForumThread(ctx, channelID, WeeklyPlansPost(monday, wisdom))
	if err != nil {
		return false, fmt.Errorf("create weekly plans thread: %w", err)
	}
	return true, nil
}
