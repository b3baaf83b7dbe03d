package schema

// LibraryGameTable represents the 'library.game' table
type LibraryGameTable struct {
	Table        string
	ID           string
	Name         string
	Hidden       string
	IsInstalled  string
	Favorite     string
	ReleaseDate  string
	Added        string
	LastActivity string
	Playtime     string
	PluginID     string
	PlatformID   string
	SeriesID     string
	RegionID     string
	SourceID     string
	AgeRatingID  string
	GenreIDs     string
	DeveloperIDs string
	PublisherIDs string
	CategoryIDs  string
	TagIDs       string
}

// LibraryGame is the schema definition for library.game
var LibraryGame = LibraryGameTable{
	Table:        "library.game",
	ID:           "id",
	Name:         "name",
	Hidden:       "hidden",
	IsInstalled:  "isinstalled",
	Favorite:     "favorite",
	ReleaseDate:  "releasedate",
	Added:        "added",
	LastActivity: "lastactivity",
	Playtime:     "playtime",
	PluginID:     "pluginid",
	PlatformID:   "platformid",
	SeriesID:     "seriesid",
	RegionID:     "regionid",
	SourceID:     "sourceid",
	AgeRatingID:  "ageratingid",
	GenreIDs:     "genreids",
	DeveloperIDs: "developerids",
	PublisherIDs: "publisherids",
	CategoryIDs:  "categoryids",
	TagIDs:       "tagids",
}

func (t LibraryGameTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Hidden, t.IsInstalled, t.Favorite, t.ReleaseDate, t.Added,
		t.LastActivity, t.Playtime, t.PluginID, t.PlatformID, t.SeriesID, t.RegionID,
		t.SourceID, t.AgeRatingID, t.GenreIDs, t.DeveloperIDs, t.PublisherIDs,
		t.CategoryIDs, t.TagIDs,
	}
}
