package record_test

import (
	"fmt"

	"steward/plain"
	"steward/record"
)

func Example() {
	addr := record.NewSchema("Address").
		Slot("street", record.NewField()).
		Slot("zip", record.NewField(record.WithDefault("00000"))).
		MustBuild()

	person := record.NewSchema("Person").
		Slot("name", record.NewField()).
		Slot("home", record.NewNested(addr, record.WithDefault(nil))).
		MustBuild()

	tree := plain.Map{"name": "ann", "home": plain.Map{"street": "main"}}
	p := person.FromPlain(tree)

	home, _ := p.Nested("home")
	_ = home.Set("street", "elm")

	zip, _ := home.Get("zip")
	fmt.Println(zip)
	fmt.Println(tree["home"])

	_, err := person.New(record.Values{"nmae": "bob"})
	fmt.Println(err)

	// Output:
	// 00000
	// map[street:elm zip:00000]
	// Extra params: 'nmae'
}

func ExampleListProxy() {
	item := record.NewSchema("Item").Slot("sku", record.NewField()).MustBuild()
	order := record.NewSchema("Order").Slot("items", record.NewList(item)).MustBuild()

	o := order.MustNew(nil)
	items, _ := o.List("items")

	_ = items.Append(item.MustNew(record.Values{"sku": "a-1"}))
	_ = items.Append(item.MustNew(record.Values{"sku": "b-2"}))
	_ = items.Delete(0)

	fmt.Println(plain.Export(o.Plain()))

	// Output:
	// map[items:[map[sku:b-2]]]
}
