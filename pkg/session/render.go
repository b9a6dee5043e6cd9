package session

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

const (
	maxTitleWidth   = 70
	maxAuthorsWidth = 40
)

// renderPage prints the current ten-result page as a table. Indexes are
// global (1-based across all pages) so they can be fed straight back as
// feedback commands.
func (s *Session) renderPage() {
	if len(s.results) == 0 {
		fmt.Fprintln(s.out, "Nothing to show for", s.date.Format("2006-01-02"))
		return
	}

	start := s.page * pageSize
	end := start + pageSize
	if end > len(s.results) {
		end = len(s.results)
	}

	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"#", "Score", "Title", "Authors", "Link"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for i := start; i < end; i++ {
		r := s.results[i]
		table.Append([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			truncate(r.Title, maxTitleWidth),
			truncate(r.AuthorList(), maxAuthorsWidth),
			r.Link,
		})
	}
	table.Render()

	lastPage := (len(s.results) + pageSize - 1) / pageSize
	fmt.Fprintf(s.out, "page %d of %d, %s\n", s.page+1, lastPage, s.date.Format("2006-01-02"))
}

func truncate(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	return string(runes[:width-3]) + "..."
}
