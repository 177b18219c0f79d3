package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/landdraw/landdraw/server/internal/config"
	"github.com/landdraw/landdraw/server/internal/lib/geometry"
	"github.com/landdraw/landdraw/server/internal/lib/repair"
	"github.com/landdraw/landdraw/server/internal/services"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	svc := newService()

	switch command {
	case "measure":
		handleMeasure(svc)
	case "check":
		handleCheck(svc)
	case "decode":
		handleDecode(svc)
	case "submit":
		handleSubmit(svc)
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func newService() *services.MeasureService {
	cfg := config.DefaultConfig()
	if path := os.Getenv("LANDMEASURE_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	return services.NewMeasureService(cfg, logger.Sugar(), nil)
}

func handleMeasure(svc *services.MeasureService) {
	fs := flag.NewFlagSet("measure", flag.ExitOnError)
	file := fs.String("file", "", "KML/GPX/GeoJSON file to measure")
	coords := fs.String("coords", "", "Inline vertices: \"lat,lng lat,lng ...\"")
	fs.Parse(os.Args[2:])

	ring := loadRing(svc, *file, *coords)
	m := svc.Measure(ring)

	fmt.Printf("Vertices:     %d\n", len(ring))
	fmt.Printf("Area:         %s\n", geometry.FormatArea(m.AreaKm2))
	fmt.Printf("Perimeter:    %s\n", geometry.FormatPerimeter(m.PerimeterKm))
	if m.Centroid != nil {
		fmt.Printf("Centroid:     %.6f, %.6f\n", m.Centroid.Latitude, m.Centroid.Longitude)
	}
	if m.BoundingBox != nil {
		fmt.Printf("Bounding box: %.6f..%.6f / %.6f..%.6f\n",
			m.BoundingBox.MinLat, m.BoundingBox.MaxLat, m.BoundingBox.MinLng, m.BoundingBox.MaxLng)
	}
	fmt.Printf("Aspect ratio: %.3f\n", m.AspectRatio)
}

func handleCheck(svc *services.MeasureService) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	file := fs.String("file", "", "File whose coordinates to sanity-check")
	coords := fs.String("coords", "", "Inline vertices: \"lat,lng lat,lng ...\"")
	viewLat := fs.Float64("view-lat", 0, "Current map view center latitude")
	viewLng := fs.Float64("view-lng", 0, "Current map view center longitude")
	relocate := fs.Bool("relocate", false, "Apply the shape-preserving relocation if repair fails")
	fs.Parse(os.Args[2:])

	ring := loadRing(svc, *file, *coords)
	var viewCenter *geometry.Point
	if *viewLat != 0 || *viewLng != 0 {
		viewCenter = &geometry.Point{Latitude: *viewLat, Longitude: *viewLng}
	}

	res, err := svc.CheckAndFix(ring, viewCenter)
	if err != nil {
		if !*relocate {
			log.Fatalf("Cannot display: %v", err)
		}
		relocated, relErr := svc.RelocateToFallback(ring)
		if relErr != nil {
			log.Fatalf("Cannot display: %v", relErr)
		}
		fmt.Println("WARNING: location unrecoverable; shape relocated to the fallback anchor.")
		fmt.Println("The result is NOT geodetically meaningful.")
		res = repair.Result{Ring: relocated, Corrected: true, Method: "relocate"}
	}

	if res.Corrected {
		fmt.Printf("Auto-corrected via %s\n", res.Method)
	} else {
		fmt.Println("Coordinates are plausible; unchanged.")
	}
	if res.ViewWarning {
		fmt.Println("WARNING: area lies far from the current view center.")
	}
	for _, v := range res.Ring {
		fmt.Printf("  %.6f, %.6f\n", v.Latitude, v.Longitude)
	}
}

func handleDecode(svc *services.MeasureService) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	file := fs.String("file", "", "File to decode")
	fs.Parse(os.Args[2:])

	if *file == "" {
		fmt.Println("Example usage:")
		fmt.Println("  landmeasure decode --file parcel.kml")
		os.Exit(1)
	}

	text, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}
	shape, res, err := svc.DecodeFile(*file, string(text), nil)
	if err != nil {
		log.Fatalf("Decode failed: %v", err)
	}

	fmt.Printf("Shape: %s\n", shape.Type)
	if res != nil && res.Corrected {
		fmt.Printf("Auto-corrected via %s\n", res.Method)
	}
	if ring, ok := shape.PrimaryRing(); ok {
		fmt.Printf("Ring vertices: %d\n", len(ring))
	} else {
		fmt.Printf("Points: %d (not measurable as an area)\n", len(shape.Points))
	}
}

func handleSubmit(svc *services.MeasureService) {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	file := fs.String("file", "", "File containing the area to submit")
	coords := fs.String("coords", "", "Inline vertices: \"lat,lng lat,lng ...\"")
	fs.Parse(os.Args[2:])

	ring := loadRing(svc, *file, *coords)
	req, err := svc.BuildRequest(ring)
	if err != nil {
		log.Fatalf("Failed to build request: %v", err)
	}
	data, err := req.MarshalIndent()
	if err != nil {
		log.Fatalf("Failed to marshal request: %v", err)
	}
	fmt.Println(string(data))
}

// loadRing resolves the --file/--coords flags into a sanity-checked ring
func loadRing(svc *services.MeasureService, file, coords string) geometry.Ring {
	if file != "" {
		text, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", file, err)
		}
		shape, _, err := svc.DecodeFile(file, string(text), nil)
		if err != nil {
			log.Fatalf("Decode failed: %v", err)
		}
		ring, ok := shape.PrimaryRing()
		if !ok {
			log.Fatalf("%s contains a LineString, not a measurable area", file)
		}
		return ring
	}

	if coords == "" {
		fmt.Println("Example usage:")
		fmt.Println("  landmeasure measure --coords \"37.7,-122.4 37.8,-122.5 37.9,-122.3\"")
		fmt.Println("  landmeasure measure --file parcel.kml")
		os.Exit(1)
	}

	var ring geometry.Ring
	for _, pair := range strings.Fields(coords) {
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			log.Fatalf("Invalid vertex %q: want \"lat,lng\"", pair)
		}
		lat, err1 := strconv.ParseFloat(parts[0], 64)
		lng, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			log.Fatalf("Invalid vertex %q: want \"lat,lng\"", pair)
		}
		ring = append(ring, geometry.Point{Latitude: lat, Longitude: lng})
	}
	return ring
}

func printUsage() {
	fmt.Println("landmeasure - measure drawn or uploaded map areas")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  measure   Compute area, perimeter, centroid and bounding box")
	fmt.Println("  check     Sanity-check coordinates, repairing misprojected input")
	fmt.Println("  decode    Decode a KML/GPX/GeoJSON/polyline file")
	fmt.Println("  submit    Build the submission payload for an area")
	fmt.Println("  help      Show this message")
	fmt.Println()
	fmt.Println("Set LANDMEASURE_CONFIG to a YAML file to override defaults.")
}
