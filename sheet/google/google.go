// Package google backs the sheet contract with a Google Sheets
// document. Documents are addressed by title: the client resolves the
// title to a spreadsheet ID through the Drive API, then reads or
// rewrites the first worksheet through the Sheets API.
package google

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	googleauth "golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/pblondin/stringify/credentials"
	"github.com/pblondin/stringify/grid"
	"github.com/pblondin/stringify/sheet"
)

// Scopes requested during authorization. Drive metadata access is
// needed to resolve document titles to spreadsheet IDs.
var scopes = []string{
	sheets.SpreadsheetsScope,
	drive.DriveMetadataReadonlyScope,
}

// AuthorizeFunc completes the interactive half of the OAuth flow: it
// receives the authorization URL to present to the user and returns
// the code the user obtained there.
type AuthorizeFunc func(authURL string) (code string, err error)

// Options configures the client.
type Options struct {
	// ClientID and ClientSecret identify the installed application.
	ClientID     string
	ClientSecret string
	// CredentialsPath is where the obtained token is cached.
	CredentialsPath string
	// Authorize drives the interactive consent flow when no cached
	// token exists. Required on first run.
	Authorize AuthorizeFunc
}

// Client reads and writes grids against Google Sheets documents.
type Client struct {
	sheets *sheets.Service
	drive  *drive.Service
}

var _ sheet.ReadWriter = (*Client)(nil)

// Connect builds an authorized client, reusing the cached token when
// one exists and running the consent flow otherwise.
func Connect(ctx context.Context, opts Options) (*Client, error) {
	conf := &oauth2.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		Endpoint:     googleauth.Endpoint,
		RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
		Scopes:       scopes,
	}

	tok, err := credentials.Load(opts.CredentialsPath)
	if err != nil {
		return nil, err
	}
	if tok == nil {
		if opts.Authorize == nil {
			return nil, fmt.Errorf("no cached token at %s and no authorization flow configured", opts.CredentialsPath)
		}
		code, err := opts.Authorize(conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline))
		if err != nil {
			return nil, fmt.Errorf("authorizing: %w", err)
		}
		exchanged, err := conf.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("exchanging authorization code: %w", err)
		}
		tok = credentials.FromOAuth2(exchanged)
		if err := credentials.Save(opts.CredentialsPath, tok); err != nil {
			return nil, err
		}
	}

	source := conf.TokenSource(ctx, tok.OAuth2())

	sheetsSvc, err := sheets.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}
	return &Client{sheets: sheetsSvc, drive: driveSvc}, nil
}

// ReadGrid fetches the full first worksheet of the document titled
// name. Rows are padded to the header width since the API drops
// trailing empty cells.
func (c *Client) ReadGrid(ctx context.Context, name string) (grid.Grid, error) {
	id, ws, err := c.locate(ctx, name)
	if err != nil {
		return nil, err
	}

	resp, err := c.sheets.Spreadsheets.Values.Get(id, ws).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", name, err)
	}

	g := make(grid.Grid, 0, len(resp.Values))
	width := 0
	if len(resp.Values) > 0 {
		width = len(resp.Values[0])
	}
	for _, row := range resp.Values {
		cells := make([]string, 0, width)
		for _, v := range row {
			cells = append(cells, fmt.Sprint(v))
		}
		for len(cells) < width {
			cells = append(cells, "")
		}
		g = append(g, cells)
	}
	return g, nil
}

// WriteGrid clears the first worksheet of the document titled name and
// uploads g in its place. A document that does not exist yet is
// created.
func (c *Client) WriteGrid(ctx context.Context, name string, g grid.Grid) error {
	id, ws, err := c.locate(ctx, name)
	switch {
	case errors.Is(err, sheet.ErrDocumentNotFound):
		if id, ws, err = c.create(ctx, name); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		_, err = c.sheets.Spreadsheets.Values.Clear(id, ws, &sheets.ClearValuesRequest{}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("clearing %q: %w", name, err)
		}
	}

	values := make([][]interface{}, 0, len(g))
	for _, row := range g {
		cells := make([]interface{}, 0, len(row))
		for _, v := range row {
			cells = append(cells, v)
		}
		values = append(values, cells)
	}
	if len(values) == 0 {
		return nil
	}

	_, err = c.sheets.Spreadsheets.Values.
		Update(id, ws+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("writing %q: %w", name, err)
	}
	return nil
}

// create makes a new empty spreadsheet titled name. Creation goes
// through the Sheets API, which the spreadsheets scope already covers;
// the Drive scope stays read-only.
func (c *Client) create(ctx context.Context, name string) (id, worksheet string, err error) {
	doc, err := c.sheets.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: name},
	}).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("creating %q: %w", name, err)
	}
	if len(doc.Sheets) == 0 {
		return "", "", fmt.Errorf("%q has no worksheets", name)
	}
	return doc.SpreadsheetId, doc.Sheets[0].Properties.Title, nil
}

// locate resolves a document title to its spreadsheet ID and the
// title of its first worksheet.
func (c *Client) locate(ctx context.Context, name string) (id, worksheet string, err error) {
	query := fmt.Sprintf(
		"name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false",
		strings.ReplaceAll(name, "'", `\'`),
	)
	list, err := c.drive.Files.List().Q(query).Fields("files(id, name)").PageSize(2).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("searching for %q: %w", name, err)
	}
	if len(list.Files) == 0 {
		return "", "", fmt.Errorf("%q: %w", name, sheet.ErrDocumentNotFound)
	}
	id = list.Files[0].Id

	doc, err := c.sheets.Spreadsheets.Get(id).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("inspecting %q: %w", name, err)
	}
	if len(doc.Sheets) == 0 {
		return "", "", fmt.Errorf("%q has no worksheets", name)
	}
	return id, doc.Sheets[0].Properties.Title, nil
}
