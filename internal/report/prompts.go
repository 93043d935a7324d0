package report

import (
	"fmt"
	"strings"
	"time"

	"tubereport/internal/models"
)

const reportInstructions = `You are a senior reporter tasked with writing a summary of a video.
You will be provided with the video link, information about the video,
and either pre-processed chunk summaries or the full captions.
Carefully process the information and think about the contents.
Then generate a final report in a structured markdown format.
Make the report engaging, informative, and well-structured.
Break the report into sections and provide key takeaways at the end.
Make sure the title is a markdown link to the video.
Give relevant titles to sections and provide details/facts/processes in each section.

<report_format>
## Video Title with Link
{this is the markdown link to the video}

### Overview
{give a brief introduction of the video and why the user should read this report}
{make this section engaging and create a hook for the reader}

### Section 1
{break the report into sections}
{provide details/facts/processes in this section}

... more sections as necessary...

### Takeaways
{provide key takeaways from the video}

Report generated on: {Month Date, Year (hh:mm AM/PM)}
</report_format>`

const generatedOnLayout = "January 2, 2006 (03:04 PM)"

func videoData(video models.VideoInfo) string {
	var b strings.Builder

	if title := strings.TrimSpace(video.Title); title != "" {
		fmt.Fprintf(&b, "Title: %s\n", title)
	}
	if author := strings.TrimSpace(video.Author); author != "" {
		fmt.Fprintf(&b, "Author: %s\n", author)
	}
	if description := strings.TrimSpace(video.Description); description != "" {
		fmt.Fprintf(&b, "Description: %s\n", description)
	}
	if b.Len() == 0 {
		b.WriteString("(no metadata available)\n")
	}

	return b.String()
}

func chunkPrompt(video models.VideoInfo, chunkText string) string {
	var b strings.Builder

	b.WriteString("Summarize the following video captions:\n\n")
	fmt.Fprintf(&b, "Video URL: %s\n\n", video.URL)
	b.WriteString("Video data:\n")
	b.WriteString(videoData(video))
	b.WriteString("\nCaptions:\n")
	b.WriteString(chunkText)

	return b.String()
}

func aggregatePrompt(video models.VideoInfo, summaries []string, now time.Time) string {
	var b strings.Builder

	b.WriteString(reportInstructions)
	fmt.Fprintf(&b, "\n\nCurrent time: %s\n\n", now.Format(generatedOnLayout))
	b.WriteString("Summarize the following captions:\n\n")
	fmt.Fprintf(&b, "Video URL: %s\n\n", video.URL)
	b.WriteString("Video data:\n")
	b.WriteString(videoData(video))
	b.WriteString("\nSummaries:\n\n")

	for i, summary := range summaries {
		fmt.Fprintf(&b, "Chunk %d:\n\n%s\n\n---\n\n", i+1, summary)
	}

	return b.String()
}

func directPrompt(video models.VideoInfo, captions string, now time.Time) string {
	var b strings.Builder

	b.WriteString(reportInstructions)
	fmt.Fprintf(&b, "\n\nCurrent time: %s\n\n", now.Format(generatedOnLayout))
	b.WriteString("Summarize the following video captions:\n\n")
	fmt.Fprintf(&b, "Video URL: %s\n\n", video.URL)
	b.WriteString("Video data:\n")
	b.WriteString(videoData(video))
	b.WriteString("\nCaptions:\n")
	b.WriteString(captions)

	return b.String()
}
