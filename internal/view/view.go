package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"

	"github.com/questx-lab/basenft/internal/model"
)

const (
	PlaceholderImage = "/static/placeholder.svg?height=400&width=400&query=NFT"
	FallbackImage    = "/static/abstract-nft-concept.svg"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type PageData struct {
	Address     string
	IsConnected bool
	IsLoading   bool
	Error       string
	NFTs        []model.NFT
}

type ErrorData struct {
	Message string
}

type View struct {
	explorerHost string
	tmpl         *template.Template
}

func New(explorerHost string) (*View, error) {
	v := &View{explorerHost: explorerHost}

	tmpl, err := template.New("view").Funcs(template.FuncMap{
		"imageSource":        ImageSource,
		"altText":            AltText,
		"displayTitle":       DisplayTitle,
		"displayDescription": DisplayDescription,
		"tokenLabel":         TokenLabel,
		"fallbackImage":      func() string { return FallbackImage },
		"explorerURL": func(nft model.NFT) string {
			return ExplorerURL(v.explorerHost, nft.Contract, nft.TokenID)
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	v.tmpl = tmpl
	return v, nil
}

// Grid renders the cards of nfts. The output only depends on nfts.
func (v *View) Grid(nfts []model.NFT) (template.HTML, error) {
	var buf bytes.Buffer
	if err := v.tmpl.ExecuteTemplate(&buf, "grid", nfts); err != nil {
		return "", err
	}

	return template.HTML(buf.String()), nil
}

func (v *View) Page(w io.Writer, data PageData) error {
	return v.tmpl.ExecuteTemplate(w, "page", data)
}

func (v *View) Error(w io.Writer, data ErrorData) error {
	return v.tmpl.ExecuteTemplate(w, "error", data)
}

// Static serves the embedded images under their file names.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	return http.FS(sub)
}

// TokenLabel shortens token ids longer than 8 characters to their first 6
// characters followed by "...".
func TokenLabel(tokenID string) string {
	runes := []rune(tokenID)
	if len(runes) <= 8 {
		return tokenID
	}

	return string(runes[:6]) + "..."
}

func ExplorerURL(host, contract, tokenID string) string {
	return fmt.Sprintf("https://%s/token/%s?a=%s",
		host, url.PathEscape(contract), url.QueryEscape(tokenID))
}

func DisplayTitle(nft model.NFT) string {
	if nft.Title != "" {
		return nft.Title
	}

	return "NFT #" + nft.TokenID
}

func AltText(nft model.NFT) string {
	if nft.Title != "" {
		return nft.Title
	}

	return "NFT " + nft.TokenID
}

func DisplayDescription(nft model.NFT) string {
	if nft.Description != "" {
		return nft.Description
	}

	return "No description"
}

// ImageSource never returns an empty source, records without an image get
// the placeholder.
func ImageSource(nft model.NFT) string {
	if nft.Image != "" {
		return nft.Image
	}

	return PlaceholderImage
}
