package card

import (
	"dropin/internal/brands"
	"dropin/internal/dom"
	"dropin/internal/hostedfields"
)

// renderMarkup builds the sheet's static element tree: the supported-brand
// icon bar, one group per active field with its error node, and the
// save-card checkbox group. Mount targets are fixed here; merchant
// configuration never reassigns them.
func (v *View) renderMarkup() {
	v.element = v.doc.CreateElement("div", "card-sheet")

	v.renderBrandIcons()

	form := v.doc.CreateElement("div", "card-form")
	v.element.AppendChild(form)

	for _, desc := range v.descriptors {
		g := v.renderFieldGroup(desc)
		form.AppendChild(g.group)
		v.fields[desc.Name] = g
		v.order = append(v.order, desc.Name)
		if g.frame != nil {
			v.hostedFrames[g.frame] = desc.Name
		}
	}

	v.renderSaveCard(form)
}

// renderBrandIcons shows the icon of every brand the gateway accepts.
// UnionPay stays hidden even when the allow-list names it.
func (v *View) renderBrandIcons() {
	bar := v.doc.CreateElement("div", "card-icons")
	v.element.AppendChild(bar)

	for _, brand := range brands.DisplayOrder {
		icon := v.doc.CreateElement("div", brand+"-card-icon")
		if !v.gateway.SupportsCardType(brand) {
			icon.AddClass(classHidden)
		}
		bar.AppendChild(icon)
	}
}

func (v *View) renderFieldGroup(desc FieldDescriptor) *fieldGroup {
	name := string(desc.Name)

	g := &fieldGroup{FieldDescriptor: desc}
	g.group = v.doc.CreateElement("div", name+"-field-group")

	g.errorEl = v.doc.CreateElement("div", name+"-field-error")
	g.errorEl.AddClass(classHidden)
	g.group.AppendChild(g.errorEl)

	if desc.Hosted {
		g.frame = v.doc.CreateElement("iframe", "hosted-field-"+name+"-frame")
		g.group.AppendChild(g.frame)
	} else {
		g.input = v.doc.CreateElement("input", name+"-input")
		g.group.AppendChild(g.input)
	}

	switch desc.Name {
	case hostedfields.FieldNumber:
		g.iconEl = v.doc.CreateElement("svg", "card-number-icon")
		g.iconEl.SetAttribute("xlink:href", brands.GenericCardIcon)
		g.iconEl.AddClass(classHidden)
		g.group.AppendChild(g.iconEl)
	case hostedfields.FieldCVV:
		g.iconEl = v.doc.CreateElement("svg", "cvv-icon")
		g.iconEl.SetAttribute("xlink:href", brands.CVVBackIcon)
		g.iconEl.AddClass(classHidden)
		g.group.AppendChild(g.iconEl)

		g.labelEl = v.doc.CreateElement("div", "cvv-label-descriptor")
		g.labelEl.SetText(v.strings.CVVThreeDigitLabelSubheading)
		g.group.AppendChild(g.labelEl)
	}

	return g
}

// renderSaveCard builds the save-card checkbox group. The group is visible
// only when the merchant allows overriding vault behavior; the checkbox
// itself defaults to checked unless configured otherwise.
func (v *View) renderSaveCard(form *dom.Element) {
	v.saveCardGroup = v.doc.CreateElement("div", "save-card-field-group")
	if !v.merchantAllowsVaultOverride() {
		v.saveCardGroup.AddClass(classHidden)
	}

	v.saveCardInput = v.doc.CreateElement("input", "save-card-input")
	v.setSaveCardChecked(v.merchant.VaultCardDefault())

	v.saveCardGroup.AppendChild(v.saveCardInput)
	form.AppendChild(v.saveCardGroup)
}

func (v *View) merchantAllowsVaultOverride() bool {
	return v.merchant.CardConfig != nil && v.merchant.Vault.AllowVaultCardOverride
}

func (v *View) setSaveCardChecked(checked bool) {
	if checked {
		v.saveCardInput.SetAttribute("checked", "true")
	} else {
		v.saveCardInput.SetAttribute("checked", "false")
	}
}

func (v *View) saveCardChecked() bool {
	val, _ := v.saveCardInput.Attribute("checked")
	return val == "true"
}
