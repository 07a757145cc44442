package genome

import (
	"fmt"
	"strings"
)

// Chromosome описывает одну хромосому сборки
type Chromosome struct {
	Name   string
	Length int64
}

// Genome описывает сборку генома
type Genome struct {
	Name        string
	Chromosomes []Chromosome
}

var builtin = map[string]*Genome{
	"hg38": {
		Name: "hg38",
		Chromosomes: []Chromosome{
			{"chr1", 248956422}, {"chr2", 242193529}, {"chr3", 198295559},
			{"chr4", 190214555}, {"chr5", 181538259}, {"chr6", 170805979},
			{"chr7", 159345973}, {"chr8", 145138636}, {"chr9", 138394717},
			{"chr10", 133797422}, {"chr11", 135086622}, {"chr12", 133275309},
			{"chr13", 114364328}, {"chr14", 107043718}, {"chr15", 101991189},
			{"chr16", 90338345}, {"chr17", 83257441}, {"chr18", 80373285},
			{"chr19", 58617616}, {"chr20", 64444167}, {"chr21", 46709983},
			{"chr22", 50818468}, {"chrX", 156040895}, {"chrY", 57227415},
			{"chrM", 16569},
		},
	},
	"hg19": {
		Name: "hg19",
		Chromosomes: []Chromosome{
			{"chr1", 249250621}, {"chr2", 243199373}, {"chr3", 198022430},
			{"chr4", 191154276}, {"chr5", 180915260}, {"chr6", 171115067},
			{"chr7", 159138663}, {"chr8", 146364022}, {"chr9", 141213431},
			{"chr10", 135534747}, {"chr11", 135006516}, {"chr12", 133851895},
			{"chr13", 115169878}, {"chr14", 107349540}, {"chr15", 102531392},
			{"chr16", 90354753}, {"chr17", 81195210}, {"chr18", 78077248},
			{"chr19", 59128983}, {"chr20", 63025520}, {"chr21", 48129895},
			{"chr22", 51304566}, {"chrX", 155270560}, {"chrY", 59373566},
			{"chrM", 16571},
		},
	},
}

// Lookup возвращает встроенную сборку по имени
func Lookup(name string) (*Genome, error) {
	g, ok := builtin[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("неизвестная сборка генома: %q", name)
	}
	return g, nil
}

// Chromosome ищет хромосому по имени. Префикс "chr" необязателен.
func (g *Genome) Chromosome(name string) (Chromosome, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	if !strings.HasPrefix(want, "chr") {
		want = "chr" + want
	}
	for _, c := range g.Chromosomes {
		if strings.ToLower(c.Name) == want {
			return c, true
		}
	}
	return Chromosome{}, false
}

// DefaultRegion возвращает стартовый регион для сборки
func (g *Genome) DefaultRegion() Region {
	first := g.Chromosomes[0]
	end := int64(1_000_000)
	if first.Length < end {
		end = first.Length
	}
	return Region{Chrom: first.Name, Start: 0, End: end}
}

// Clamp удерживает регион в границах хромосомы.
// При упоре в край ширина региона сохраняется, пока она не превышает длину хромосомы.
func (g *Genome) Clamp(r Region) Region {
	c, ok := g.Chromosome(r.Chrom)
	if !ok {
		return r
	}
	width := r.Width()
	if width <= 0 {
		width = 1
	}
	if width >= c.Length {
		return Region{Chrom: c.Name, Start: 0, End: c.Length}
	}

	start := r.Start
	if start < 0 {
		start = 0
	}
	if start+width > c.Length {
		start = c.Length - width
	}
	return Region{Chrom: c.Name, Start: start, End: start + width}
}
