package scryfall

// Card is the subset of a Scryfall card object this application reads.
type Card struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	ManaCost      string     `json:"mana_cost,omitempty"`
	CMC           float64    `json:"cmc"`
	TypeLine      string     `json:"type_line"`
	OracleText    string     `json:"oracle_text,omitempty"`
	Colors        []string   `json:"colors,omitempty"`
	ColorIdentity []string   `json:"color_identity,omitempty"`
	Rarity        string     `json:"rarity"`
	SetCode       string     `json:"set"`
	SetName       string     `json:"set_name"`
	ImageURIs     *ImageURIs `json:"image_uris,omitempty"`
	CardFaces     []CardFace `json:"card_faces,omitempty"`
}

// CardFace is one face of a multi-faced card. Double-faced cards have
// no top-level image_uris; images live on the faces instead.
type CardFace struct {
	Name      string     `json:"name"`
	ManaCost  string     `json:"mana_cost,omitempty"`
	TypeLine  string     `json:"type_line"`
	ImageURIs *ImageURIs `json:"image_uris,omitempty"`
}

// ImageURIs contains card image URLs by resolution.
type ImageURIs struct {
	Small      string `json:"small"`
	Normal     string `json:"normal"`
	Large      string `json:"large"`
	PNG        string `json:"png"`
	ArtCrop    string `json:"art_crop"`
	BorderCrop string `json:"border_crop"`
}

// searchResponse is the wire shape of GET /cards/search.
type searchResponse struct {
	Object     string `json:"object"`
	TotalCards int    `json:"total_cards"`
	HasMore    bool   `json:"has_more"`
	NextPage   string `json:"next_page,omitempty"`
	Data       []Card `json:"data"`
}

// ResultCard is the flattened projection handed to callers: one image
// URL chosen from the preference order and scalar fields ready for the
// local card store.
type ResultCard struct {
	ScryfallID string   `json:"scryfall_id"`
	Name       string   `json:"name"`
	ManaCost   string   `json:"mana_cost,omitempty"`
	CMC        float64  `json:"cmc"`
	Type       string   `json:"type"`
	Rarity     string   `json:"rarity"`
	ImageURL   string   `json:"image_url,omitempty"`
	Colors     []string `json:"colors,omitempty"`
	SetCode    string   `json:"set"`
	SetName    string   `json:"set_name"`
	OracleText string   `json:"oracle_text,omitempty"`
}

// SearchResult is one page of normalized catalog search results.
type SearchResult struct {
	Cards      []ResultCard `json:"cards"`
	TotalCards int          `json:"total_cards"`
	HasMore    bool         `json:"has_more"`
}

// flatten normalizes a catalog card into the local projection,
// choosing the first available image resolution in preference order
// (normal > large > small) and falling back to the first card face
// when the primary face has no images.
func flatten(c Card) ResultCard {
	return ResultCard{
		ScryfallID: c.ID,
		Name:       c.Name,
		ManaCost:   c.ManaCost,
		CMC:        c.CMC,
		Type:       c.TypeLine,
		Rarity:     c.Rarity,
		ImageURL:   pickImage(c),
		Colors:     c.Colors,
		SetCode:    c.SetCode,
		SetName:    c.SetName,
		OracleText: c.OracleText,
	}
}

func pickImage(c Card) string {
	if u := pickFromURIs(c.ImageURIs); u != "" {
		return u
	}
	if len(c.CardFaces) > 0 {
		return pickFromURIs(c.CardFaces[0].ImageURIs)
	}
	return ""
}

func pickFromURIs(u *ImageURIs) string {
	if u == nil {
		return ""
	}
	switch {
	case u.Normal != "":
		return u.Normal
	case u.Large != "":
		return u.Large
	case u.Small != "":
		return u.Small
	}
	return ""
}
