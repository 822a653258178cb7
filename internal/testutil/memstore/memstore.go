// Package memstore là store in-memory cho tests: implement repository của
// entity store và association manager, có failure injection và đếm số lần gọi.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	entitymodel "wrestling-admin/internal/domains/entity/model"
	"wrestling-admin/internal/shared/capability"
)

// Store không cascade khi delete: row junction trỏ tới entity đã xóa vẫn còn,
// giống một schema không có foreign key.
type Store struct {
	mu sync.Mutex

	nextID   int64
	entities map[entitymodel.Kind]map[int64]entitymodel.Entity
	links    map[entitymodel.Kind]map[int64][]int64 // kind → wrestler_id → other ids

	rejectImage map[string]bool
	caps        *capability.Set
	failures    map[string]error
	calls       map[string]int
	lastFields  map[entitymodel.Kind]entitymodel.Fields
}

func New() *Store {
	s := &Store{
		entities:    make(map[entitymodel.Kind]map[int64]entitymodel.Entity),
		links:       make(map[entitymodel.Kind]map[int64][]int64),
		rejectImage: make(map[string]bool),
		failures:    make(map[string]error),
		calls:       make(map[string]int),
		lastFields:  make(map[entitymodel.Kind]entitymodel.Fields),
	}
	for _, k := range entitymodel.AllKinds {
		s.entities[k] = make(map[int64]entitymodel.Entity)
	}
	for _, k := range entitymodel.RelatedKinds {
		s.links[k] = make(map[int64][]int64)
	}
	return s
}

// ==================== TEST CONTROLS ====================

// FailOn làm operation op (tên method, vd "Create", "Replace") trả err cho tới khi Recover
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Store) Recover(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, op)
}

// RejectImageColumn mô phỏng bảng không có cột image_url: mọi write có image_url bị 42703
// (và cả read nếu đã gắn UseCapabilities)
func (s *Store) RejectImageColumn(table string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectImage[table] = true
}

// UseCapabilities làm store select image_url giống postgres repository: khi caps
// còn bật cột cho một bảng bị RejectImageColumn thì cả read cũng bị 42703.
func (s *Store) UseCapabilities(caps *capability.Set) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.caps = caps
}

// selectsMissingImage: câu select (hoặc RETURNING) sẽ nhắc tới cột image_url không tồn tại
func (s *Store) selectsMissingImage(kind entitymodel.Kind) bool {
	return s.caps != nil && s.rejectImage[kind.Table()] &&
		kind.SupportsImage() && s.caps.ImageColumn(kind.Table())
}

func (s *Store) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// LastFields trả về Fields của lần Create/Update gần nhất cho kind
func (s *Store) LastFields(kind entitymodel.Kind) entitymodel.Fields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFields[kind]
}

// Seed insert trực tiếp, không tính vào Calls
func (s *Store) Seed(kind entitymodel.Kind, name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.entities[kind][s.nextID] = entitymodel.Entity{ID: s.nextID, Name: name, CreatedAt: time.Now().UTC()}
	return s.nextID
}

// Link thêm liên kết trực tiếp, không tính vào Calls
func (s *Store) Link(kind entitymodel.Kind, wrestlerID int64, ids ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[kind][wrestlerID] = append(s.links[kind][wrestlerID], ids...)
}

// JunctionRows trả về số row junction của wrestler cho kind
func (s *Store) JunctionRows(kind entitymodel.Kind, wrestlerID int64) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.links[kind][wrestlerID]...)
}

// hit đếm call và trả về lỗi inject; caller phải giữ mu
func (s *Store) hit(op string) error {
	s.calls[op]++
	return s.failures[op]
}

func undefinedImageColumn(table string) error {
	return &pgconn.PgError{
		Severity: "ERROR",
		Code:     "42703",
		Message:  fmt.Sprintf(`column "image_url" of relation "%s" does not exist`, table),
	}
}

func sortByName(list []entitymodel.Entity) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
}

// ==================== ENTITY REPOSITORY ====================

func (s *Store) List(_ context.Context, kind entitymodel.Kind) ([]entitymodel.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("List"); err != nil {
		return nil, err
	}
	if s.selectsMissingImage(kind) {
		return nil, undefinedImageColumn(kind.Table())
	}

	out := make([]entitymodel.Entity, 0, len(s.entities[kind]))
	for _, e := range s.entities[kind] {
		out = append(out, e)
	}
	sortByName(out)
	return out, nil
}

func (s *Store) GetByID(_ context.Context, kind entitymodel.Kind, id int64) (*entitymodel.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetByID"); err != nil {
		return nil, err
	}
	if s.selectsMissingImage(kind) {
		return nil, undefinedImageColumn(kind.Table())
	}

	e, ok := s.entities[kind][id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *Store) GetByIDs(_ context.Context, kind entitymodel.Kind, ids []int64) ([]entitymodel.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("GetByIDs"); err != nil {
		return nil, err
	}
	if s.selectsMissingImage(kind) {
		return nil, undefinedImageColumn(kind.Table())
	}

	out := make([]entitymodel.Entity, 0, len(ids))
	seen := map[int64]bool{}
	for _, id := range ids {
		if e, ok := s.entities[kind][id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, e)
		}
	}
	sortByName(out)
	return out, nil
}

func (s *Store) Create(_ context.Context, kind entitymodel.Kind, fields entitymodel.Fields) (*entitymodel.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("Create"); err != nil {
		return nil, err
	}

	s.lastFields[kind] = fields
	if (fields.WithImage && s.rejectImage[kind.Table()]) || s.selectsMissingImage(kind) {
		return nil, undefinedImageColumn(kind.Table())
	}

	s.nextID++
	e := entitymodel.Entity{ID: s.nextID, Name: fields.Name, CreatedAt: time.Now().UTC()}
	if fields.WithImage {
		e.ImageURL = fields.ImageURL
	}
	s.entities[kind][e.ID] = e
	return &e, nil
}

func (s *Store) Update(_ context.Context, kind entitymodel.Kind, id int64, fields entitymodel.Fields, updatedAt time.Time) (*entitymodel.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("Update"); err != nil {
		return nil, err
	}

	s.lastFields[kind] = fields
	if (fields.WithImage && s.rejectImage[kind.Table()]) || s.selectsMissingImage(kind) {
		return nil, undefinedImageColumn(kind.Table())
	}

	e, ok := s.entities[kind][id]
	if !ok {
		return nil, nil
	}
	e.Name = fields.Name
	if fields.WithImage {
		e.ImageURL = fields.ImageURL
	}
	e.UpdatedAt = &updatedAt
	s.entities[kind][id] = e
	return &e, nil
}

func (s *Store) Delete(_ context.Context, kind entitymodel.Kind, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("Delete"); err != nil {
		return false, err
	}

	if _, ok := s.entities[kind][id]; !ok {
		return false, nil
	}
	delete(s.entities[kind], id)
	return true, nil
}

// ==================== ASSOCIATION REPOSITORY ====================

func (s *Store) RelatedIDs(_ context.Context, kind entitymodel.Kind, wrestlerID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("RelatedIDs"); err != nil {
		return nil, err
	}

	return append([]int64{}, s.links[kind][wrestlerID]...), nil
}

func (s *Store) RelatedIDsByWrestlers(_ context.Context, kind entitymodel.Kind, wrestlerIDs []int64) (map[int64][]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("RelatedIDsByWrestlers"); err != nil {
		return nil, err
	}

	out := make(map[int64][]int64)
	for _, w := range wrestlerIDs {
		if ids := s.links[kind][w]; len(ids) > 0 {
			out[w] = append([]int64(nil), ids...)
		}
	}
	return out, nil
}

func (s *Store) WrestlerIDs(_ context.Context, kind entitymodel.Kind, entityID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("WrestlerIDs"); err != nil {
		return nil, err
	}

	out := []int64{}
	for w, ids := range s.links[kind] {
		for _, id := range ids {
			if id == entityID {
				out = append(out, w)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// Replace là atomic: lỗi inject không để lại trạng thái dở dang
func (s *Store) Replace(_ context.Context, kind entitymodel.Kind, wrestlerID int64, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("Replace"); err != nil {
		return err
	}

	if len(ids) == 0 {
		delete(s.links[kind], wrestlerID)
		return nil
	}
	s.links[kind][wrestlerID] = append([]int64(nil), ids...)
	return nil
}

func (s *Store) Count(_ context.Context, kind entitymodel.Kind, entityID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("Count"); err != nil {
		return 0, err
	}

	n := 0
	for _, ids := range s.links[kind] {
		for _, id := range ids {
			if id == entityID {
				n++
			}
		}
	}
	return n, nil
}

func (s *Store) CountAll(_ context.Context, kind entitymodel.Kind) (map[int64]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hit("CountAll"); err != nil {
		return nil, err
	}

	counts := make(map[int64]int)
	for _, ids := range s.links[kind] {
		for _, id := range ids {
			counts[id]++
		}
	}
	return counts, nil
}
