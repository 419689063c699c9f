package dataset

// Column names of the track schema. The set is fixed by the external
// music-metadata API that produced the file.
const (
	ColID               = "id"
	ColName             = "name"
	ColPopularity       = "popularity"
	ColDurationMS       = "duration_ms"
	ColExplicit         = "explicit"
	ColArtists          = "artists"
	ColIDArtists        = "id_artists"
	ColReleaseDate      = "release_date"
	ColDanceability     = "danceability"
	ColEnergy           = "energy"
	ColKey              = "key"
	ColLoudness         = "loudness"
	ColMode             = "mode"
	ColSpeechiness      = "speechiness"
	ColAcousticness     = "acousticness"
	ColInstrumentalness = "instrumentalness"
	ColLiveness         = "liveness"
	ColValence          = "valence"
	ColTempo            = "tempo"
	ColTimeSignature    = "time_signature"

	// ColReleaseYear is derived during preparation, not present in the input.
	ColReleaseYear = "release_year"
)

// Track represents a single song and its audio-feature measurements.
type Track struct {
	ID               string  `parquet:"id" json:"id" dataframe:"id,string"`
	Name             string  `parquet:"name" json:"name" dataframe:"name,string"`
	Popularity       int64   `parquet:"popularity" json:"popularity" dataframe:"popularity,int"`
	DurationMS       int64   `parquet:"duration_ms" json:"duration_ms" dataframe:"duration_ms,int"`
	Explicit         int64   `parquet:"explicit" json:"explicit" dataframe:"explicit,int"`
	Artists          string  `parquet:"artists" json:"artists" dataframe:"artists,string"`
	IDArtists        string  `parquet:"id_artists" json:"id_artists" dataframe:"id_artists,string"`
	ReleaseDate      string  `parquet:"release_date" json:"release_date" dataframe:"release_date,string"`
	Danceability     float64 `parquet:"danceability" json:"danceability" dataframe:"danceability,float"`
	Energy           float64 `parquet:"energy" json:"energy" dataframe:"energy,float"`
	Key              int64   `parquet:"key" json:"key" dataframe:"key,int"`
	Loudness         float64 `parquet:"loudness" json:"loudness" dataframe:"loudness,float"`
	Mode             int64   `parquet:"mode" json:"mode" dataframe:"mode,int"`
	Speechiness      float64 `parquet:"speechiness" json:"speechiness" dataframe:"speechiness,float"`
	Acousticness     float64 `parquet:"acousticness" json:"acousticness" dataframe:"acousticness,float"`
	Instrumentalness float64 `parquet:"instrumentalness" json:"instrumentalness" dataframe:"instrumentalness,float"`
	Liveness         float64 `parquet:"liveness" json:"liveness" dataframe:"liveness,float"`
	Valence          float64 `parquet:"valence" json:"valence" dataframe:"valence,float"`
	Tempo            float64 `parquet:"tempo" json:"tempo" dataframe:"tempo,float"`
	TimeSignature    int64   `parquet:"time_signature" json:"time_signature" dataframe:"time_signature,int"`
}

// RequiredColumns lists every column the input file must provide.
func RequiredColumns() []string {
	return []string{
		ColID,
		ColName,
		ColPopularity,
		ColDurationMS,
		ColExplicit,
		ColArtists,
		ColIDArtists,
		ColReleaseDate,
		ColDanceability,
		ColEnergy,
		ColKey,
		ColLoudness,
		ColMode,
		ColSpeechiness,
		ColAcousticness,
		ColInstrumentalness,
		ColLiveness,
		ColValence,
		ColTempo,
		ColTimeSignature,
	}
}
