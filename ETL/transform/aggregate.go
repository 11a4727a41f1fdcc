package transform

// meanAccumulator накапливает сумму и число непустых значений
type meanAccumulator struct {
	sum   float64
	count int
}

func (a *meanAccumulator) add(v *float64) {
	if v == nil {
		return
	}
	a.sum += *v
	a.count++
}

// mean возвращает среднее или nil, если непустых значений не было
func (a *meanAccumulator) mean() *float64 {
	if a.count == 0 {
		return nil
	}
	m := a.sum / float64(a.count)
	return &m
}

// groupMean группировка по ключу с усреднением значений.
// Ключ появляется в результате даже если все его значения пустые.
type groupMean[K comparable] struct {
	groups map[K]*meanAccumulator
}

func newGroupMean[K comparable]() *groupMean[K] {
	return &groupMean[K]{groups: make(map[K]*meanAccumulator)}
}

func (g *groupMean[K]) add(key K, v *float64) {
	acc, ok := g.groups[key]
	if !ok {
		acc = &meanAccumulator{}
		g.groups[key] = acc
	}
	acc.add(v)
}

// means возвращает итоговые средние по ключам (каждый ключ ровно один раз)
func (g *groupMean[K]) means() map[K]*float64 {
	result := make(map[K]*float64, len(g.groups))
	for key, acc := range g.groups {
		result[key] = acc.mean()
	}
	return result
}
