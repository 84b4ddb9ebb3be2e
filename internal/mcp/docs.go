package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `ccsearch indexes local conversation logs (one JSON object per line) and searches their text.

Model:
- Project: one log file. Its display name is the name of the directory holding it.
- Record: one decoded line: summary, system, user or assistant. Lines that do not decode are skipped.
- Only the most recently modified files are loaded (a configured limit); call reload_projects to rescan.

Workflow:
1) list_projects to see what is loaded (name filters fuzzily).
2) search_records with a query; matching is case-insensitive substring over record text.
3) get_record with a project and record id for the full text and the original line shape.
4) get_recent_activity to review earlier loads and searches.

Docs:
- ccsearch://docs/records (record kinds and which text is searchable)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "ccsearch://docs/records",
		Name:        "docs_records",
		Title:       "Record kinds and searchable text",
		Description: "What each record kind holds and which parts of it search_records looks at.",
		Content: `# Records

Every line of a log file is a JSON object with a ` + "`type`" + ` field.

| type | searchable text |
|---|---|
| ` + "`summary`" + ` | the summary string |
| ` + "`system`" + ` | the content string |
| ` + "`user`" + ` | the message when it is a string, otherwise each text block in order |
| ` + "`assistant`" + ` | each text block of the message in order |

Tool calls, tool results, thinking blocks and images are kept on the record but
are never searched.

## Ids

Conversational records (system, user, assistant) are identified by ` + "`uuid`" + `.
Summaries are identified by ` + "`leafUuid`" + `, the record they summarize.

## Skipped lines

A line is skipped when it is blank, is not a JSON object, has an unknown
` + "`type`" + `, lacks a required field, has an empty timestamp, or carries a
content block of an unknown type. Skipped lines never fail a file.

## Failed files

A file that cannot be opened, read, or is not UTF-8 text is listed with a
` + "`load_error`" + ` and contributes no records.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
