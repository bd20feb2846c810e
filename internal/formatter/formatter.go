// package formatter renders sort previews to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/ytsort/internal/models"
)

func trackNumberString(n int) string {
	if n == models.UnknownTrackNumber {
		return ""
	}
	return strconv.Itoa(n)
}

// FormatDuration renders seconds as m:ss, empty for unknown.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ExportToCSV renders a track order as CSV with columns:
// Position, ID, Title, Artist, Album, ReleaseDate, TrackNumber, Duration
func ExportToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "ID", "Title", "Artist", "Album", "ReleaseDate", "TrackNumber", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, track := range tracks {
		record := []string{
			strconv.Itoa(i + 1),
			track.ItemID,
			track.Title,
			track.Artist,
			track.AlbumName,
			track.ReleaseDate,
			trackNumberString(track.TrackNumber),
			strconv.Itoa(track.Duration),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a sort preview as Markdown.
func ExportToMarkdown(playlistID string, tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Playlist %s\n\n", playlistID))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(tracks)))

	buf.WriteString("## Order\n\n")
	for i, track := range tracks {
		albumPart := ""
		if track.AlbumName != "" {
			albumPart = fmt.Sprintf(" (%s", track.AlbumName)
			if track.ReleaseDate != "" {
				albumPart += ", " + track.ReleaseDate
			}
			albumPart += ")"
		}

		durationPart := ""
		if d := FormatDuration(track.Duration); d != "" {
			durationPart = fmt.Sprintf(" [%s]", d)
		}

		buf.WriteString(fmt.Sprintf("%d. %s - %s%s%s\n", i+1, track.Artist, track.Title, albumPart, durationPart))
	}

	return buf.Bytes(), nil
}

// ExportToText renders a sort preview as plain text.
func ExportToText(playlistID string, tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", playlistID))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(tracks)))

	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artist, track.Title))
	}

	return buf.Bytes(), nil
}

// WriteExport renders tracks in the named format and writes the result
// to path. Format is one of csv, markdown, txt.
func WriteExport(playlistID string, tracks []models.Track, format, path string) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case "csv":
		data, err = ExportToCSV(tracks)
	case "markdown", "md":
		data, err = ExportToMarkdown(playlistID, tracks)
	case "txt", "text":
		data, err = ExportToText(playlistID, tracks)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}
