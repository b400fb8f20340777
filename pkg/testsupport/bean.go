package testsupport

import "github.com/goliatone/go-modelgen/pkg/classdesc"

// BeanFieldCount is the number of generated fields in BeanClass.
const BeanFieldCount = 26

// BeanClass returns the reference class used by the end-to-end tests: 26
// eligible properties covering every semantic type, "aInt" as identifier,
// explicit CRUD methods, paging and no validations. Every call returns a
// class with a fresh identity.
func BeanClass() *classdesc.Class {
	noPersist := false
	return classdesc.New("testsupport.Bean", classdesc.ModelConfig{
		Value:         "Sch.Bean",
		Paging:        true,
		ReadMethod:    "read",
		CreateMethod:  "create",
		UpdateMethod:  "update",
		DestroyMethod: "destroy",
	},
		classdesc.Property{Name: "aByte", Type: "byte"},
		classdesc.Property{Name: "aShort", Type: "int16", Field: &classdesc.FieldConfig{DefaultValue: "1"}},
		classdesc.Property{Name: "aInt", Type: "int32", ID: true},
		classdesc.Property{Name: "aLong", Type: "int64", Field: &classdesc.FieldConfig{Mapping: "long_value"}},
		classdesc.Property{Name: "aByteObject", Type: "*uint8"},
		classdesc.Property{Name: "aShortObject", Type: "*int16"},
		classdesc.Property{Name: "aIntObject", Type: "*int", Field: &classdesc.FieldConfig{UseNull: true}},
		classdesc.Property{Name: "aLongObject", Type: "*int64"},
		classdesc.Property{Name: "aBigDecimal", Type: "decimal"},
		classdesc.Property{Name: "aBigInteger", Type: "integer"},
		classdesc.Property{Name: "aFloat", Type: "float32"},
		classdesc.Property{Name: "aDouble", Type: "float64", Field: &classdesc.FieldConfig{DefaultValue: 1.5}},
		classdesc.Property{Name: "aFloatObject", Type: "*float32"},
		classdesc.Property{Name: "aDoubleObject", Type: "*float64"},
		classdesc.Property{Name: "aString", Type: "string", Field: &classdesc.FieldConfig{DefaultValue: "none"}},
		classdesc.Property{Name: "aBoolean", Type: "bool", Field: &classdesc.FieldConfig{DefaultValue: true}},
		classdesc.Property{Name: "aBooleanObject", Type: "*bool"},
		classdesc.Property{Name: "aDate", Type: "time.Time"},
		classdesc.Property{Name: "aSqlDate", Type: "date", Field: &classdesc.FieldConfig{DateFormat: "Y-m-d"}},
		classdesc.Property{Name: "aTimestamp", Type: "timestamp"},
		classdesc.Property{Name: "aDateTime", Type: "datetime", Field: &classdesc.FieldConfig{DateFormat: "Y-m-d H:i:s"}},
		classdesc.Property{Name: "aLocalDate", Type: "date"},
		classdesc.Property{Name: "aCharacter", Type: "rune"},
		classdesc.Property{Name: "aCharacterObject", Type: "char"},
		classdesc.Property{Name: "aUUID", Type: "uuid.UUID", Field: &classdesc.FieldConfig{Type: "string"}},
		classdesc.Property{Name: "aObject", Type: "any", Field: &classdesc.FieldConfig{Persist: &noPersist}},
		classdesc.Property{Name: "transientValue", Type: "string", Ignore: true},
	)
}

// AssociatedClasses returns a small graph exercising every association kind
// plus validations: an Order belonging to a Customer, owning many Lines and
// one Invoice, with a self reference through "parent".
func AssociatedClasses() (order, customer, line *classdesc.Class) {
	minLen, maxLen := 2, 40
	customer = classdesc.New("shop.Customer", classdesc.ModelConfig{Value: "Shop.Customer"},
		classdesc.Property{Name: "id", Type: "int64", ID: true},
		classdesc.Property{Name: "name", Type: "string"},
	)
	line = classdesc.New("shop.Line", classdesc.ModelConfig{Value: "Shop.Line", ReadOnly: true, ReadMethod: "lineService.read"},
		classdesc.Property{Name: "id", Type: "int64"},
		classdesc.Property{Name: "qty", Type: "int"},
	)
	order = classdesc.New("shop.Order", classdesc.ModelConfig{
		Value:         "Shop.Order",
		IDProperty:    "orderId",
		ReadMethod:    "orderService.read",
		CreateMethod:  "orderService.create",
		UpdateMethod:  "orderService.update",
		DestroyMethod: "orderService.destroy",
	})
	order.Properties = []classdesc.Property{
		{Name: "orderId", Type: "int64"},
		{Name: "code", Type: "string", Validations: []classdesc.ValidationConfig{
			{Type: classdesc.ValidationPresence},
			{Type: classdesc.ValidationLength, Min: &minLen, Max: &maxLen},
			{Type: classdesc.ValidationFormat, Matcher: "^[A-Z]{2}-\\d+$"},
		}},
		{Name: "status", Type: "string", Validations: []classdesc.ValidationConfig{
			{Type: classdesc.ValidationInclusion, List: []string{"open", "closed"}},
		}},
		{Name: "contact", Type: "string", Validations: []classdesc.ValidationConfig{
			{Type: classdesc.ValidationEmail},
		}},
		{Name: "customer", Association: (classdesc.AssociationConfig{Kind: classdesc.KindBelongsTo}).To(customer)},
		{Name: "lines", Association: (classdesc.AssociationConfig{Kind: classdesc.KindHasMany, AutoLoad: true, ForeignKey: "order_id"}).To(line)},
		{Name: "invoice", Association: &classdesc.AssociationConfig{Kind: classdesc.KindHasOne, Model: "Shop.Invoice", AssociationKey: "invoiceData"}},
		{Name: "parent", Association: (classdesc.AssociationConfig{Kind: classdesc.KindBelongsTo, ForeignKey: "parent_id", GetterName: "getParentOrder"}).To(order)},
	}
	return order, customer, line
}
