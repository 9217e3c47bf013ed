package zrexpress

// dispatchRequest is the body of POST /add_colis
type dispatchRequest struct {
	Colis []colis `json:"Colis"`
}

// colis is a single parcel in the Procolis wire format
type colis struct {
	Tracking      string `json:"Tracking"`
	TypeLivraison string `json:"TypeLivraison"`
	TypeColis     string `json:"TypeColis"`
	Confrimee     string `json:"Confrimee"`
	Client        string `json:"Client"`
	MobileA       string `json:"MobileA"`
	MobileB       string `json:"MobileB"`
	Adresse       string `json:"Adresse"`
	IDWilaya      string `json:"IDWilaya"`
	Commune       string `json:"Commune"`
	Total         string `json:"Total"`
	Note          string `json:"Note"`
	TProduit      string `json:"TProduit"`
	IDExterne     string `json:"id_Externe"`
	Source        string `json:"Source"`
}

// dispatchResponse is the echo returned by POST /add_colis
type dispatchResponse struct {
	Colis []colisVerdict `json:"Colis"`
}

// colisVerdict is the per-parcel verdict in the dispatch echo
type colisVerdict struct {
	Tracking      string `json:"Tracking"`
	MessageRetour string `json:"MessageRetour"`
}
