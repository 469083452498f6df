package shopify

// ProductsQuery fetches one page of products with their cover image and
// primary variant. Cursor and page size are passed as variables; the
// endCursor that comes back is opaque and goes into the next $after as-is.
const ProductsQuery = `
query getProducts($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        title
        handle
        status
        tags
        featuredImage {
          url
          altText
        }
        variants(first: 1) {
          edges {
            node {
              id
              price
              barcode
            }
          }
        }
      }
    }
  }
}
`
