package content

import "time"

// Podcast is one playable episode. The ledger never inspects it; only
// the podcast surface does.
type Podcast struct {
	ID          string
	Title       string
	Description string
	Duration    string
	AudioURL    string
}

// DefaultPodcasts is the built-in episode rotation.
var DefaultPodcasts = []Podcast{
	{
		ID:          "daily-1",
		Title:       "IELTS Daily: Academic Vocabulary",
		Description: "Learn 5 essential academic words with examples and pronunciation. Perfect for IELTS Writing and Speaking.",
		Duration:    "5:00",
		AudioURL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3",
	},
}

// TodayPodcast picks the day's episode by rotating through the list on a
// day index, so every device agrees on the episode without coordination.
func TodayPodcast(podcasts []Podcast, now time.Time) *Podcast {
	if len(podcasts) == 0 {
		return nil
	}
	dayIndex := int(now.Unix()/(60*60*24)) % len(podcasts)
	return &podcasts[dayIndex]
}
