package activities

// ─── E-book Reader ──────────────────────────────────────────────────────────

// Chapter points: every chapter pays once; the last one includes a bonus.
const (
	ChapterPoints      = 10
	FinalChapterPoints = 60
)

// Chapter is one chapter of the e-book.
type Chapter struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// Chapters is the table of contents of "Healing Anxiety".
var Chapters = []Chapter{
	{Number: 1, Title: "Understanding Anxiety"},
	{Number: 2, Title: "Breathing Techniques"},
	{Number: 3, Title: "Mindfulness and Presence"},
	{Number: 4, Title: "Restructuring Thoughts"},
	{Number: 5, Title: "Healthy Habits"},
	{Number: 6, Title: "Your Action Plan"},
}

// EbookReader tracks reading position and which chapters already paid out.
type EbookReader struct {
	page      int
	completed map[int]bool
}

// NewEbookReader opens the book at the first chapter.
func NewEbookReader() *EbookReader {
	return &EbookReader{completed: make(map[int]bool)}
}

// Current returns the chapter being read.
func (r *EbookReader) Current() Chapter {
	return Chapters[r.page]
}

// Next completes the current chapter and moves forward. It returns the points
// earned, which are zero when the chapter was completed before. On the last
// chapter the position does not move.
func (r *EbookReader) Next() int {
	points := 0
	last := r.page == len(Chapters)-1
	if !r.completed[r.page] {
		r.completed[r.page] = true
		points = ChapterPoints
		if last {
			points = FinalChapterPoints
		}
	}
	if !last {
		r.page++
	}
	return points
}

// Previous moves back one chapter.
func (r *EbookReader) Previous() {
	if r.page > 0 {
		r.page--
	}
}

// Finished reports whether every chapter has been completed.
func (r *EbookReader) Finished() bool {
	return len(r.completed) == len(Chapters)
}

// ProgressPct returns the reading position as a percentage.
func (r *EbookReader) ProgressPct() float64 {
	return float64(r.page+1) * 100 / float64(len(Chapters))
}
