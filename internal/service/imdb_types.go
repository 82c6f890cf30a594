package service

// imdbTitle imdbapi.dev 返回的影片结构
type imdbTitle struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	PrimaryTitle  string `json:"primaryTitle"`
	OriginalTitle string `json:"originalTitle"`
	PrimaryImage  *struct {
		URL    string `json:"url"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	} `json:"primaryImage"`
	StartYear      int      `json:"startYear"`
	EndYear        int      `json:"endYear"`
	RuntimeSeconds *int     `json:"runtimeSeconds"`
	Genres         []string `json:"genres"`
	Rating         *struct {
		AggregateRating float64 `json:"aggregateRating"`
		VoteCount       int     `json:"voteCount"`
	} `json:"rating"`
	Plot string `json:"plot"`
}

type imdbTitlesResponse struct {
	Titles        []imdbTitle `json:"titles"`
	NextPageToken string      `json:"nextPageToken"`
}

type imdbSearchResponse struct {
	Results []imdbTitle `json:"results"`
}

type imdbCredit struct {
	Name *struct {
		ID       string `json:"id"`
		NameText *struct {
			Text string `json:"text"`
		} `json:"nameText"`
		PrimaryImage *struct {
			URL string `json:"url"`
		} `json:"primaryImage"`
	} `json:"name"`
	Characters []struct {
		Name string `json:"name"`
	} `json:"characters"`
	Category *struct {
		Text string `json:"text"`
	} `json:"category"`
}

type imdbCreditsResponse struct {
	Credits *struct {
		Edges []struct {
			Node imdbCredit `json:"node"`
		} `json:"edges"`
	} `json:"credits"`
}
