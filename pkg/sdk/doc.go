// Package pawfect embeds the pet product search engine in a Go program.
//
// The client loads a product table (.csv or .parquet), fits a TF-IDF model
// over the descriptions and answers category-scoped searches in process.
//
//	client, _ := pawfect.Open(ctx, pawfect.WithProducts("data/products.csv"))
//	defer client.Close()
//	hits, _ := client.Search(ctx, "Dog", "chew toy", 10)
//
// Results are ordered by descending cosine similarity and only include
// products whose description contains the query text, ignoring case.
package pawfect
