package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/terraincognita07/wavelength/internal/models"
)

var ErrCatalogFailed = errors.New("build catalog failed")

type CatalogLayerReader interface {
	ListAll() ([]models.Layer, error)
}

type CatalogPhaseReader interface {
	ListAll() ([]models.Phase, error)
}

type CatalogCurriculumReader interface {
	ListAll() ([]models.Curriculum, error)
}

type CatalogStrategyReader interface {
	ListAll() ([]models.Strategy, error)
}

type CatalogCurriculumEntry struct {
	ID         uint          `json:"id"`
	Dosage     models.Dosage `json:"dosage"`
	Expression string        `json:"expression"`
}

type CatalogStrategy struct {
	ID       uint   `json:"id"`
	Strategy string `json:"strategy"`
	Color    string `json:"color"`
}

type CatalogPhase struct {
	ID         uint                     `json:"id"`
	Name       string                   `json:"name"`
	Medicinal  []CatalogCurriculumEntry `json:"medicinal"`
	Toxic      []CatalogCurriculumEntry `json:"toxic"`
	Strategies []CatalogStrategy        `json:"strategies"`
}

type CatalogLayer struct {
	ID       uint           `json:"id"`
	Color    string         `json:"color"`
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle"`
	Phases   []CatalogPhase `json:"phases"`
}

type Catalog struct {
	PhaseOrder []string       `json:"phase_order"`
	Layers     []CatalogLayer `json:"layers"`
}

type CatalogService struct {
	layers     CatalogLayerReader
	phases     CatalogPhaseReader
	curriculum CatalogCurriculumReader
	strategies CatalogStrategyReader
}

func NewCatalogService(
	layers CatalogLayerReader,
	phases CatalogPhaseReader,
	curriculum CatalogCurriculumReader,
	strategies CatalogStrategyReader,
) *CatalogService {
	return &CatalogService{
		layers:     layers,
		phases:     phases,
		curriculum: curriculum,
		strategies: strategies,
	}
}

func (service *CatalogService) Build() (Catalog, error) {
	layers, err := service.layers.ListAll()
	if err != nil {
		return Catalog{}, fmt.Errorf("%w: %v", ErrCatalogFailed, err)
	}
	phases, err := service.phases.ListAll()
	if err != nil {
		return Catalog{}, fmt.Errorf("%w: %v", ErrCatalogFailed, err)
	}
	curriculum, err := service.curriculum.ListAll()
	if err != nil {
		return Catalog{}, fmt.Errorf("%w: %v", ErrCatalogFailed, err)
	}
	strategies, err := service.strategies.ListAll()
	if err != nil {
		return Catalog{}, fmt.Errorf("%w: %v", ErrCatalogFailed, err)
	}
	return BuildCatalog(layers, phases, curriculum, strategies), nil
}

// OrderPhases sorts phases by their canonical display position. Phases with
// names outside the canonical order follow, by id.
func OrderPhases(phases []models.Phase) []models.Phase {
	ordered := append([]models.Phase(nil), phases...)
	sort.SliceStable(ordered, func(i, j int) bool {
		left := models.PhaseOrderIndex(ordered[i].Name)
		right := models.PhaseOrderIndex(ordered[j].Name)
		switch {
		case left >= 0 && right >= 0 && left != right:
			return left < right
		case left >= 0 && right < 0:
			return true
		case left < 0 && right >= 0:
			return false
		default:
			return ordered[i].ID < ordered[j].ID
		}
	})
	return ordered
}

// BuildCatalog nests curriculum entries and strategies under every layer and
// phase in a single pass over each input.
func BuildCatalog(layers []models.Layer, phases []models.Phase, curriculum []models.Curriculum, strategies []models.Strategy) Catalog {
	orderedPhases := OrderPhases(phases)
	phaseIndex := make(map[uint]int, len(orderedPhases))
	phaseOrder := make([]string, 0, len(orderedPhases))
	for index, phase := range orderedPhases {
		phaseIndex[phase.ID] = index
		phaseOrder = append(phaseOrder, phase.Name)
	}

	sortedLayers := append([]models.Layer(nil), layers...)
	sort.Slice(sortedLayers, func(i, j int) bool {
		return sortedLayers[i].ID < sortedLayers[j].ID
	})

	layerIndex := make(map[uint]int, len(sortedLayers))
	layerColors := make(map[uint]string, len(sortedLayers))
	catalogLayers := make([]CatalogLayer, 0, len(sortedLayers))
	for index, layer := range sortedLayers {
		layerIndex[layer.ID] = index
		layerColors[layer.ID] = layer.Color

		catalogPhases := make([]CatalogPhase, 0, len(orderedPhases))
		for _, phase := range orderedPhases {
			catalogPhases = append(catalogPhases, CatalogPhase{
				ID:         phase.ID,
				Name:       phase.Name,
				Medicinal:  make([]CatalogCurriculumEntry, 0),
				Toxic:      make([]CatalogCurriculumEntry, 0),
				Strategies: make([]CatalogStrategy, 0),
			})
		}
		catalogLayers = append(catalogLayers, CatalogLayer{
			ID:       layer.ID,
			Color:    layer.Color,
			Title:    layer.Title,
			Subtitle: layer.Subtitle,
			Phases:   catalogPhases,
		})
	}

	sortedCurriculum := append([]models.Curriculum(nil), curriculum...)
	sort.Slice(sortedCurriculum, func(i, j int) bool {
		return sortedCurriculum[i].ID < sortedCurriculum[j].ID
	})
	for _, entry := range sortedCurriculum {
		phase := locateCatalogPhase(catalogLayers, layerIndex, phaseIndex, entry.LayerID, entry.PhaseID)
		if phase == nil {
			continue
		}
		item := CatalogCurriculumEntry{ID: entry.ID, Dosage: entry.Dosage, Expression: entry.Expression}
		if entry.Dosage == models.DosageMedicinal {
			phase.Medicinal = append(phase.Medicinal, item)
		} else {
			phase.Toxic = append(phase.Toxic, item)
		}
	}

	sortedStrategies := append([]models.Strategy(nil), strategies...)
	sort.Slice(sortedStrategies, func(i, j int) bool {
		return sortedStrategies[i].ID < sortedStrategies[j].ID
	})
	for _, strategy := range sortedStrategies {
		phase := locateCatalogPhase(catalogLayers, layerIndex, phaseIndex, strategy.LayerID, strategy.PhaseID)
		if phase == nil {
			continue
		}
		phase.Strategies = append(phase.Strategies, CatalogStrategy{
			ID:       strategy.ID,
			Strategy: strategy.Strategy,
			Color:    layerColors[strategy.EffectiveColorLayerID()],
		})
	}

	return Catalog{PhaseOrder: phaseOrder, Layers: catalogLayers}
}

func locateCatalogPhase(layers []CatalogLayer, layerIndex map[uint]int, phaseIndex map[uint]int, layerID uint, phaseID uint) *CatalogPhase {
	layerPosition, ok := layerIndex[layerID]
	if !ok {
		return nil
	}
	phasePosition, ok := phaseIndex[phaseID]
	if !ok {
		return nil
	}
	return &layers[layerPosition].Phases[phasePosition]
}
