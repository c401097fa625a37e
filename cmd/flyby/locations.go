package main

type location struct {
	Name string
	Lat  float64
	Lon  float64
}

// demoLocations exercises the boundary, both validation failures, and a few
// well-known landmarks.
var demoLocations = []location{
	{Name: "Test 1", Lat: 90, Lon: 180},
	{Name: "Testing invalid latitude coordinates", Lat: -91, Lon: -79.34234},
	{Name: "Testing invalid longitude coordinates", Lat: -90, Lon: -181},
	{Name: "Testing Grand Canyon", Lat: 36.098592, Lon: -112.097796},
	{Name: "Testing Niagara Falls", Lat: 43.078154, Lon: -79.075891},
	{Name: "Testing Four Corners Monument", Lat: 36.998979, Lon: -109.045183},
	{Name: "Testing Delphix SF", Lat: 37.7937007, Lon: -122.4039064},
}
