package domain

// InteractionMatrix maps (customer, product) pairs to summed purchase
// quantities. Cells are stored sparsely; absent pairs behave as zero.
// Row and column order carries no meaning - all access is label-based.
type InteractionMatrix struct {
	customers []int64
	products  []string
	custIndex map[int64]int
	prodIndex map[string]int
	cells     map[int64]map[string]int64
}

// NewInteractionMatrix aggregates cleaned transactions into a customer×product
// quantity matrix, summing quantities per (customer, product) group.
func NewInteractionMatrix(transactions []Transaction) *InteractionMatrix {
	m := &InteractionMatrix{
		custIndex: make(map[int64]int),
		prodIndex: make(map[string]int),
		cells:     make(map[int64]map[string]int64),
	}

	for _, tx := range transactions {
		if _, ok := m.custIndex[tx.CustomerID]; !ok {
			m.custIndex[tx.CustomerID] = len(m.customers)
			m.customers = append(m.customers, tx.CustomerID)
			m.cells[tx.CustomerID] = make(map[string]int64)
		}
		if _, ok := m.prodIndex[tx.Description]; !ok {
			m.prodIndex[tx.Description] = len(m.products)
			m.products = append(m.products, tx.Description)
		}
		m.cells[tx.CustomerID][tx.Description] += tx.Quantity
	}

	return m
}

// Customers returns the distinct customer identifiers in first-seen order.
func (m *InteractionMatrix) Customers() []int64 {
	return m.customers
}

// Products returns the distinct product descriptions in first-seen order.
func (m *InteractionMatrix) Products() []string {
	return m.products
}

// HasCustomer reports whether the customer appears in the matrix.
func (m *InteractionMatrix) HasCustomer(customer int64) bool {
	_, ok := m.custIndex[customer]
	return ok
}

// Quantity returns the summed quantity for a (customer, product) pair,
// zero when the pair was never observed.
func (m *InteractionMatrix) Quantity(customer int64, product string) int64 {
	return m.cells[customer][product]
}

// CustomerTotal returns the total quantity purchased by a customer.
func (m *InteractionMatrix) CustomerTotal(customer int64) int64 {
	var total int64
	for _, qty := range m.cells[customer] {
		total += qty
	}
	return total
}

// Row returns the customer's quantities as a dense vector over all products,
// in Products() order. Unknown customers yield an all-zero vector.
func (m *InteractionMatrix) Row(customer int64) []float64 {
	row := make([]float64, len(m.products))
	for product, qty := range m.cells[customer] {
		row[m.prodIndex[product]] = float64(qty)
	}
	return row
}

// Column returns the product's quantities as a dense vector over all
// customers, in Customers() order. Unknown products yield an all-zero vector.
func (m *InteractionMatrix) Column(product string) []float64 {
	col := make([]float64, len(m.customers))
	for i, customer := range m.customers {
		col[i] = float64(m.cells[customer][product])
	}
	return col
}

// Neighbor pairs an entity with its similarity score to some reference entity.
type Neighbor[ID comparable] struct {
	ID    ID
	Score float64
}

// SimilarityMatrix holds pairwise cosine-similarity scores keyed by entity
// identifier. It is square and symmetric by construction.
type SimilarityMatrix[ID comparable] struct {
	ids    []ID
	index  map[ID]int
	scores [][]float64
}

// NewSimilarityMatrix allocates a zeroed square matrix over the given
// identifiers. Identifier order is preserved.
func NewSimilarityMatrix[ID comparable](ids []ID) *SimilarityMatrix[ID] {
	index := make(map[ID]int, len(ids))
	scores := make([][]float64, len(ids))
	for i, id := range ids {
		index[id] = i
		scores[i] = make([]float64, len(ids))
	}
	return &SimilarityMatrix[ID]{ids: ids, index: index, scores: scores}
}

// SetPair stores a score for the entity pair at positions (i, j), mirroring
// it so the matrix stays symmetric.
func (m *SimilarityMatrix[ID]) SetPair(i, j int, score float64) {
	m.scores[i][j] = score
	m.scores[j][i] = score
}

// Has reports whether the entity appears in the matrix.
func (m *SimilarityMatrix[ID]) Has(id ID) bool {
	_, ok := m.index[id]
	return ok
}

// Len returns the number of entities.
func (m *SimilarityMatrix[ID]) Len() int {
	return len(m.ids)
}

// IDs returns the entity identifiers in matrix order.
func (m *SimilarityMatrix[ID]) IDs() []ID {
	return m.ids
}

// Score returns the similarity between two entities, zero when either is
// unknown.
func (m *SimilarityMatrix[ID]) Score(a, b ID) float64 {
	i, ok := m.index[a]
	if !ok {
		return 0
	}
	j, ok := m.index[b]
	if !ok {
		return 0
	}
	return m.scores[i][j]
}

// Neighbors returns every other entity paired with its similarity to id.
// The reference entity itself is excluded.
func (m *SimilarityMatrix[ID]) Neighbors(id ID) []Neighbor[ID] {
	i, ok := m.index[id]
	if !ok {
		return nil
	}
	neighbors := make([]Neighbor[ID], 0, len(m.ids)-1)
	for j, other := range m.ids {
		if j == i {
			continue
		}
		neighbors = append(neighbors, Neighbor[ID]{ID: other, Score: m.scores[i][j]})
	}
	return neighbors
}
