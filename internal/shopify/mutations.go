package shopify

// ProductUpdateMutation updates a product's editable fields. Validation is
// upstream's job: userErrors carries any field-level rejections.
const ProductUpdateMutation = `
mutation productUpdate($input: ProductInput!) {
  productUpdate(input: $input) {
    product {
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
    userErrors {
      field
      message
    }
  }
}
`

// ProductDeleteMutation deletes a product by GID.
const ProductDeleteMutation = `
mutation productDelete($input: ProductDeleteInput!) {
  productDelete(input: $input) {
    deletedProductId
    userErrors {
      field
      message
    }
  }
}
`

// ProductUpdateInput is the $input for productUpdate.
type ProductUpdateInput struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Status string   `json:"status"`
	Tags   []string `json:"tags,omitempty"`
}

// ProductDeleteInput is the $input for productDelete.
type ProductDeleteInput struct {
	ID string `json:"id"`
}
