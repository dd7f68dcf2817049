package engine

import (
	"sort"
	"strings"
)

// ToggleRole adds or removes a role from the current selection.
func (s *Session) ToggleRole(id string) Notice {
	if _, ok := s.catalog.Role(id); !ok {
		return Notice{}
	}
	if s.roles.Has(id) {
		s.roles.Remove(id)
	} else {
		s.roles.Put(id)
	}
	return Notice{}
}

// SelectedRoles returns the selection in catalog order.
func (s *Session) SelectedRoles() []string {
	return s.inCatalogOrder(func(id string) bool { return s.roles.Has(id) })
}

// RoleCheck is the outcome of comparing the selection with the cell's ground truth.
type RoleCheck struct {
	Missing []string
	Extra   []string
}

func (r RoleCheck) OK() bool { return len(r.Missing) == 0 && len(r.Extra) == 0 }

// CompareRoles diffs a selection against the roles required at cell.
func (s *Session) CompareRoles() RoleCheck {
	required := map[string]bool{}
	var res RoleCheck
	for _, id := range s.catalog.RequiredRoles(s.cell) {
		required[id] = true
		if !s.roles.Has(id) {
			res.Missing = append(res.Missing, id)
		}
	}
	s.roles.Each(func(id string) {
		if !required[id] {
			res.Extra = append(res.Extra, id)
		}
	})
	sort.Slice(res.Extra, func(i, j int) bool { return s.roleRank(res.Extra[i]) < s.roleRank(res.Extra[j]) })
	return res
}

// CheckRoles verifies the selection for the current cell. Any mismatch costs a
// single fixed penalty however many roles are wrong. The selection always clears.
func (s *Session) CheckRoles() Notice {
	res := s.CompareRoles()
	s.roles = newRoleSet()
	if res.OK() {
		return success("Bravo ! Vous avez correctement identifié les rôles pour cette étape.")
	}
	var parts []string
	if len(res.Missing) > 0 {
		parts = append(parts, "Il manque les rôles suivants : "+s.roleNames(res.Missing))
	}
	if len(res.Extra) > 0 {
		parts = append(parts, "Ces rôles ne devraient pas être sélectionnés : "+s.roleNames(res.Extra))
	}
	s.ledger.Append(Penalty{Type: ImpactExchanges, Value: "1h"}, s.cell)
	return penalty(strings.Join(parts, "\n"))
}

func (s *Session) roleNames(ids []string) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = s.catalog.RoleName(id)
	}
	return strings.Join(names, ", ")
}

func (s *Session) roleRank(id string) int {
	for i, r := range s.catalog.Roles {
		if r.ID == id {
			return i
		}
	}
	return len(s.catalog.Roles)
}

func (s *Session) inCatalogOrder(keep func(id string) bool) []string {
	var out []string
	for _, r := range s.catalog.Roles {
		if keep(r.ID) {
			out = append(out, r.ID)
		}
	}
	return out
}
