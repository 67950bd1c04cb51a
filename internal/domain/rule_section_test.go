package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRuleSectionAddRule(t *testing.T) {
	section := RuleSection{}

	first := section.AddRule("No cheating")
	second := section.AddRule("No griefing")

	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 2, second.Number)
	assert.Equal(t, 1, second.Order)

	// Numbering continues past the maximum, not past the count.
	section.Rules[0].Number = 7
	third := section.AddRule("No exploits")
	assert.Equal(t, 8, third.Number)
}

func TestRuleSectionRemoveRule(t *testing.T) {
	section := RuleSection{}
	section.AddRule("rule one")
	target := section.AddRule("rule two")
	section.AddRule("rule three")

	removed := section.RemoveRule(target.ID)

	assert.True(t, removed)
	assert.Len(t, section.Rules, 2)
	for i, r := range section.Rules {
		assert.Equal(t, i+1, r.Number)
		assert.Equal(t, i, r.Order)
	}

	assert.False(t, section.RemoveRule(uuid.New()))
	assert.Len(t, section.Rules, 2)
}

func TestRuleSectionUpdateRule(t *testing.T) {
	section := RuleSection{}
	rule := section.AddRule("old text")

	assert.True(t, section.UpdateRule(rule.ID, "new text"))
	assert.Equal(t, "new text", section.Rules[0].Text)

	assert.False(t, section.UpdateRule(uuid.New(), "irrelevant"))
}

func TestAdminHasRole(t *testing.T) {
	admin := Admin{Role: RoleAdmin}
	superadmin := Admin{Role: RoleSuperAdmin}

	assert.True(t, admin.HasRole(RoleAdmin))
	assert.False(t, admin.HasRole(RoleSuperAdmin))
	assert.True(t, superadmin.HasRole(RoleAdmin))
	assert.True(t, superadmin.HasRole(RoleSuperAdmin))
}
