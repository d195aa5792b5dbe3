package scene

import (
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"golang.org/x/xerrors"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string // Unique identifier, used on the command line
	DisplayName string // Human readable name
	Description string
}

type sceneBuilder func(aspectRatio float64) (*Scene, *renderer.PerspectiveCamera, error)

type registeredScene struct {
	description string
	build       sceneBuilder
}

var builtinScenes = map[string]registeredScene{
	"empty": {
		description: "No primitives, background only",
		build: func(aspectRatio float64) (*Scene, *renderer.PerspectiveCamera, error) {
			s, camera := NewEmptyScene(aspectRatio)
			return s, camera, nil
		},
	},
	"quad": {
		description: "Flat quad under a point light, seen from above",
		build:       NewQuadScene,
	},
	"default": {
		description: "Spheres in front of a mirror panel",
		build:       NewDefaultScene,
	},
	"cornell": {
		description: "Cornell box with a mirror sphere",
		build:       NewCornellScene,
	},
	"meshes": {
		description: "Flat and smooth shaded triangle meshes",
		build:       NewTriangleMeshScene,
	},
	"spheregrid": {
		description: "Grid of glossy spheres on a ground plane",
		build:       NewSphereGridScene,
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for id, s := range builtinScenes {
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: s.description,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Create builds the built-in scene with the given ID and its camera
func Create(id string, aspectRatio float64) (*Scene, *renderer.PerspectiveCamera, error) {
	registered, ok := builtinScenes[id]
	if !ok {
		return nil, nil, xerrors.Errorf("unknown scene %q", id)
	}
	if aspectRatio <= 0 {
		return nil, nil, xerrors.Errorf("scene %q: invalid aspect ratio %f", id, aspectRatio)
	}
	return registered.build(aspectRatio)
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
