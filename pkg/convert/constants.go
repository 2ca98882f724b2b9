package convert

const (
	MinCoords      = 2
	KeyType        = "type"
	KeyCoordinates = "coordinates"
	WKTColumn      = "WKT_Geometry"
)
