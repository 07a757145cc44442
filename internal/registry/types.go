package registry

import (
	"strings"

	"github.com/hazadus/go-gbrowse/internal/genome"
	"github.com/hazadus/go-gbrowse/internal/options"
	"github.com/hazadus/go-gbrowse/internal/source"
	"github.com/hazadus/go-gbrowse/internal/track"
	"github.com/hazadus/go-gbrowse/internal/visual"
)

// Типы треков
const (
	TypeBed            = "bed"
	TypeGeneAnnotation = "geneannotation"
	TypeG3d            = "g3d"
	TypeBedGraph       = "bedgraph"
)

var commonEditors = []options.Editor{options.Color, options.Height, options.Label}

// Default создает реестр со всеми встроенными типами
func Default(opener source.Opener) *Registry {
	return New(opener, Bed(), GeneAnnotation(), G3d(), BedGraph())
}

// Bed конфигурация трека произвольных записей BED
func Bed() Config {
	return Config{
		Type:        TypeBed,
		Description: "записи BED",
		NewSource: func(opener source.Opener, origin string) source.Source {
			return source.NewBedSource(opener, origin)
		},
		Render:                         visual.Features,
		Editors:                        append(append([]options.Editor{}, commonEditors...), options.DisplayMode),
		ShouldFetchBecauseOptionChange: never,
		ShouldFetchBecauseRegionChange: regionDiffers,
	}
}

// GeneAnnotation конфигурация трека аннотации генов (BED12)
func GeneAnnotation() Config {
	return Config{
		Type:        TypeGeneAnnotation,
		Description: "аннотация генов BED12",
		NewSource: func(opener source.Opener, origin string) source.Source {
			return source.NewBedSource(opener, origin)
		},
		Render:                         visual.Genes,
		Editors:                        append(append([]options.Editor{}, commonEditors...), options.DisplayMode),
		ShouldFetchBecauseOptionChange: never,
		ShouldFetchBecauseRegionChange: regionDiffers,
	}
}

// G3d конфигурация трека 3D структуры генома
func G3d() Config {
	return Config{
		Type:        TypeG3d,
		Description: "3D структура генома",
		NewSource: func(opener source.Opener, origin string) source.Source {
			return source.NewG3dSource(opener, origin)
		},
		Render:                         visual.Structure,
		Editors:                        append(append([]options.Editor{}, commonEditors...), options.RegionMode, options.Resolution),
		ShouldFetchBecauseOptionChange: keysChanged(options.RegionMode, options.Resolution),
		ShouldFetchBecauseRegionChange: g3dRegionChange,
	}
}

// BedGraph конфигурация трека числового сигнала
func BedGraph() Config {
	return Config{
		Type:        TypeBedGraph,
		Description: "числовой сигнал bedGraph",
		NewSource: func(opener source.Opener, origin string) source.Source {
			return source.NewBedGraphSource(opener, origin)
		},
		Render:                         visual.Signal,
		Editors:                        append(append([]options.Editor{}, commonEditors...), options.Aggregate),
		ShouldFetchBecauseOptionChange: never,
		ShouldFetchBecauseRegionChange: regionDiffers,
	}
}

func never(_, _ track.Options) bool {
	return false
}

func regionDiffers(_ track.Options, old, new genome.Region) bool {
	return !old.Equal(new)
}

// keysChanged возвращает предикат, срабатывающий только на изменение параметров editors.
// Отсутствующий параметр равен значению по умолчанию своего редактора.
func keysChanged(editors ...options.Editor) func(old, new track.Options) bool {
	return func(old, new track.Options) bool {
		for _, e := range editors {
			if !strings.EqualFold(old.String(e.Key, e.Default), new.String(e.Key, e.Default)) {
				return true
			}
		}
		return false
	}
}

func g3dRegionChange(opts track.Options, old, new genome.Region) bool {
	switch strings.ToUpper(opts.String(options.KeyRegion, options.ModeRegion)) {
	case options.ModeGenome:
		return false
	case options.ModeChromosome:
		return old.Chrom != new.Chrom
	default:
		return !old.Equal(new)
	}
}
