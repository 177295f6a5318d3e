package server

import "github.com/ykhknw/pocketnavi/pkg/search"

// searchResponse is the wire shape of one result page.
type searchResponse struct {
	Items      []buildingResponse `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
	PageRange  []pageRefResponse  `json:"page_range,omitempty"`
}

type architectResponse struct {
	Architect      string         `json:"architect"`
	ArchitectSlug  string         `json:"architect_slug"`
	SearchResponse searchResponse `json:"results"`
}

type buildingResponse struct {
	BuildingID      int                 `json:"building_id"`
	Slug            string              `json:"slug"`
	Title           string              `json:"title"`
	TitleEn         string              `json:"title_en"`
	Location        string              `json:"location"`
	LocationEn      string              `json:"location_en"`
	Prefecture      string              `json:"prefecture"`
	PrefectureEn    string              `json:"prefecture_en"`
	BuildingTypes   []string            `json:"building_types"`
	BuildingTypesEn []string            `json:"building_types_en"`
	CompletionYear  *int                `json:"completion_year"`
	Lat             *float64            `json:"lat"`
	Lng             *float64            `json:"lng"`
	ThumbnailURL    string              `json:"thumbnail_url,omitempty"`
	YoutubeURL      string              `json:"youtube_url,omitempty"`
	Likes           int                 `json:"likes"`
	Architects      []architectRefEntry `json:"architects"`
	DistanceKm      *float64            `json:"distance_km,omitempty"`
}

type architectRefEntry struct {
	ArchitectID int    `json:"architect_id"`
	Name        string `json:"name"`
	NameEn      string `json:"name_en"`
	Slug        string `json:"slug"`
}

type pageRefResponse struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

func toSearchResponse(result search.SearchResult) searchResponse {
	items := make([]buildingResponse, 0, len(result.Items))
	for _, building := range result.Items {
		items = append(items, toBuildingResponse(building))
	}

	refs := make([]pageRefResponse, 0, len(result.PageRefs))
	for _, ref := range result.PageRefs {
		refs = append(refs, pageRefResponse{Page: ref.Number, Ellipsis: ref.Ellipsis})
	}

	return searchResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		PageRange:  refs,
	}
}

func toBuildingResponse(building *search.Building) buildingResponse {
	architects := make([]architectRefEntry, 0, len(building.Architects))
	for _, ref := range building.Architects {
		architects = append(architects, architectRefEntry{
			ArchitectID: ref.ArchitectID,
			Name:        ref.Name,
			NameEn:      ref.NameEn,
			Slug:        ref.Slug,
		})
	}

	return buildingResponse{
		BuildingID:      building.BuildingID,
		Slug:            building.Slug,
		Title:           building.Title,
		TitleEn:         building.TitleEn,
		Location:        building.Location,
		LocationEn:      building.LocationEn,
		Prefecture:      building.Prefecture,
		PrefectureEn:    building.PrefectureEn,
		BuildingTypes:   building.BuildingTypes,
		BuildingTypesEn: building.BuildingTypesEn,
		CompletionYear:  building.CompletionYear,
		Lat:             building.Lat,
		Lng:             building.Lng,
		ThumbnailURL:    building.ThumbnailURL,
		YoutubeURL:      building.YoutubeURL,
		Likes:           building.Likes,
		Architects:      architects,
		DistanceKm:      building.DistanceKm,
	}
}
