// Package content builds paginator page payloads from codex entries. It is
// a thin producer: the controller never learns what a page means, and
// position-dependent text is computed here through the FormatItem hook.
package content

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/wfaller/pageturn/internal/paginator"
	"github.com/wfaller/pageturn/internal/services/bot/storage"
)

const defaultPerPage = 5

// PageOptions shapes how entries are chunked into embed pages.
type PageOptions struct {
	// Title heads every page embed.
	Title string
	// PerPage caps entries per page; zero uses the default of 5.
	PerPage int
	// Color is the embed accent color.
	Color int
	// FormatItem renders one entry's field name given its absolute position
	// in the full sequence. Nil uses the entry title unadorned.
	FormatItem func(entry storage.Entry, index int) string
}

// EntryPages chunks entries into embed pages for the paginator.
func EntryPages(entries []storage.Entry, opts PageOptions) []paginator.Content {
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	var pages []paginator.Content
	for start := 0; start < len(entries); start += perPage {
		end := start + perPage
		if end > len(entries) {
			end = len(entries)
		}
		embed := &discordgo.MessageEmbed{
			Title: opts.Title,
			Color: opts.Color,
		}
		for i, entry := range entries[start:end] {
			name := entry.Title
			if opts.FormatItem != nil {
				name = opts.FormatItem(entry, start+i)
			}
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  name,
				Value: entryLine(entry),
			})
		}
		pages = append(pages, embed)
	}
	return pages
}

func entryLine(entry storage.Entry) string {
	if entry.Author == "" {
		return fmt.Sprintf("score %d", entry.Score)
	}
	return fmt.Sprintf("%s · score %d", entry.Author, entry.Score)
}
