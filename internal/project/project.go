package project

import (
	"fmt"
	"sort"
	"sync"

	"github.com/wajenzi/fundicut/internal/cutsheet"
	"github.com/wajenzi/fundicut/internal/engine"
	"github.com/wajenzi/fundicut/internal/geometry"
	"github.com/wajenzi/fundicut/internal/model"
	"github.com/wajenzi/fundicut/internal/pricing"
	"github.com/wajenzi/fundicut/internal/style"
)

// UnknownStyleError reports a project item whose style the registry
// cannot resolve.
type UnknownStyleError struct {
	ItemID  int
	StyleID string
}

func (e *UnknownStyleError) Error() string {
	return fmt.Sprintf("project item %d references unknown style %q", e.ItemID, e.StyleID)
}

// ComputePieces expands every project item into labeled pieces, in item
// order. Each item is computed with its own formula scope; one item's
// dimensions never leak into another item's formulas.
func ComputePieces(items []model.ProjectItem, registry style.Registry) ([]model.LabeledPiece, error) {
	var pieces []model.LabeledPiece
	for _, item := range items {
		def, ok := registry.Lookup(item.StyleID)
		if !ok {
			return nil, &UnknownStyleError{ItemID: item.ItemID, StyleID: item.StyleID}
		}
		computed, err := geometry.ComputePieces(def, item.Dimensions, item.UnitQuantity)
		if err != nil {
			return nil, fmt.Errorf("item %d %q: %w", item.ItemID, item.ItemLabel, err)
		}
		for _, p := range computed {
			pieces = append(pieces, model.LabeledPiece{
				Piece:     p,
				ItemID:    item.ItemID,
				ItemLabel: item.ItemLabel,
			})
		}
	}
	return pieces, nil
}

type linearKey struct {
	materialID string
	shape      model.ShapeType
}

// maxPackWorkers bounds the per-material packing fan-out.
const maxPackWorkers = 4

// Plan computes the full quote for a project: the labeled piece list,
// one cutting plan per linear material and shape, one glass plan per
// sheet material, the fundi cutting sheets and the charge total.
// Packing fans out per material over a bounded worker pool; plans land
// in material-sorted order regardless of scheduling, so identical input
// always yields a structurally identical result.
func Plan(items []model.ProjectItem, registry style.Registry, stock model.StockConfig, method model.ChargeMethod, rates model.Rates) (*model.QuoteResult, error) {
	return plan(items, registry, stock, method, rates, false)
}

// PlanOptimized is Plan with the placement-order search run on every
// area material. Slower, and never worse on sheet count.
func PlanOptimized(items []model.ProjectItem, registry style.Registry, stock model.StockConfig, method model.ChargeMethod, rates model.Rates) (*model.QuoteResult, error) {
	return plan(items, registry, stock, method, rates, true)
}

func plan(items []model.ProjectItem, registry style.Registry, stock model.StockConfig, method model.ChargeMethod, rates model.Rates, optimize bool) (*model.QuoteResult, error) {
	pieces, err := ComputePieces(items, registry)
	if err != nil {
		return nil, err
	}

	linearGroups := map[linearKey][]model.LabeledPiece{}
	areaGroups := map[string][]model.LabeledPiece{}
	var linearKeys []linearKey
	var areaKeys []string
	for _, p := range pieces {
		if p.Shape.IsArea() {
			if _, ok := areaGroups[p.MaterialID]; !ok {
				areaKeys = append(areaKeys, p.MaterialID)
			}
			areaGroups[p.MaterialID] = append(areaGroups[p.MaterialID], p)
			continue
		}
		k := linearKey{materialID: p.MaterialID, shape: p.Shape}
		if _, ok := linearGroups[k]; !ok {
			linearKeys = append(linearKeys, k)
		}
		linearGroups[k] = append(linearGroups[k], p)
	}
	sort.Slice(linearKeys, func(i, j int) bool {
		if linearKeys[i].materialID != linearKeys[j].materialID {
			return linearKeys[i].materialID < linearKeys[j].materialID
		}
		return linearKeys[i].shape < linearKeys[j].shape
	})
	sort.Strings(areaKeys)

	result := &model.QuoteResult{Pieces: pieces, Method: method}

	// Workers write into index-stable slices, one slot per material.
	linearPlans := make([]model.CuttingPlan, len(linearKeys))
	type areaSlot struct {
		plan model.GlassCuttingPlan
		ok   bool
	}
	areaPlans := make([]areaSlot, len(areaKeys))

	sem := make(chan struct{}, maxPackWorkers)
	var wg sync.WaitGroup
	for i, k := range linearKeys {
		wg.Add(1)
		go func(i int, k linearKey) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			packer := engine.NewLinear(stock.BarLength(k.materialID))
			linearPlans[i] = packer.Pack(k.materialID, k.shape, linearGroups[k])
		}(i, k)
	}
	for i, materialID := range areaKeys {
		sheet, ok := stock.SheetFor(materialID)
		if !ok {
			// No sheet size registered for this material; there is no
			// sensible default to pack against.
			continue
		}
		wg.Add(1)
		go func(i int, materialID string, sheet model.SheetStock) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			packer := engine.NewArea(sheet)
			if optimize {
				areaPlans[i] = areaSlot{plan: packer.PackBest(materialID, areaGroups[materialID], engine.DefaultGeneticConfig()), ok: true}
			} else {
				areaPlans[i] = areaSlot{plan: packer.Pack(materialID, areaGroups[materialID]), ok: true}
			}
		}(i, materialID, sheet)
	}
	wg.Wait()

	for i := range linearPlans {
		result.LinearPlans = append(result.LinearPlans, linearPlans[i])
		result.FundiSheets = append(result.FundiSheets, cutsheet.Build(linearPlans[i]))
	}
	for i := range areaPlans {
		if areaPlans[i].ok {
			result.GlassPlans = append(result.GlassPlans, areaPlans[i].plan)
		}
	}

	result.TotalCharge = pricing.Charge(method, items, result.LinearPlans, result.GlassPlans, rates)
	return result, nil
}

// Quote runs Plan over a saved project document and returns the result
// without mutating the document.
func Quote(p model.Project, registry style.Registry) (*model.QuoteResult, error) {
	return Plan(p.Items, registry, p.Stock, p.Method, p.Rates)
}

// QuoteOptimized is Quote with the placement-order search enabled.
func QuoteOptimized(p model.Project, registry style.Registry) (*model.QuoteResult, error) {
	return PlanOptimized(p.Items, registry, p.Stock, p.Method, p.Rates)
}
