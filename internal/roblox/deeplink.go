package roblox

import "fmt"

// Deep link URIs understood by the Sober runtime. Sober registers itself as
// the handler for the roblox:// scheme inside the sandbox, so these are passed
// as the first argument to the app.

// PlaceURI builds a deep link that starts an experience by place ID.
func PlaceURI(placeID string) string {
	return fmt.Sprintf("roblox://experiences/start?placeId=%s", placeID)
}

// InstanceURI builds a deep link that joins a specific running server of a place.
func InstanceURI(placeID, gameInstanceID string) string {
	return fmt.Sprintf("roblox://experiences/start?placeId=%s&gameInstanceId=%s", placeID, gameInstanceID)
}

// PrivateServerURI builds a deep link that joins a private server by link code.
func PrivateServerURI(placeID, linkCode string) string {
	return fmt.Sprintf("roblox://placeId=%s&linkCode=%s", placeID, linkCode)
}
