package repositories

// studentFields is the selection set shared by every student document.
const studentFields = `
      status
      message
      data {
        studentId
        firstName
        lastName
        gender
        dateOfBirth
        mobileNumber
        address
        class
        section
        rollNumber
        admissionDate
        status
      }`

const studentsQuery = `
  query Students {
    students {` + studentFields + `
    }
  }
`

const getStudentQuery = `
  query GetStudent($studentId: Int!) {
    student(studentId: $studentId) {` + studentFields + `
    }
  }
`

const createStudentMutation = `
  mutation CreateStudent(
    $firstName: String!
    $lastName: String!
    $gender: String!
    $dateOfBirth: String!
    $mobileNumber: String!
    $address: String!
    $class: String!
    $section: String!
    $rollNumber: String!
    $admissionDate: String!
    $status: String!
  ) {
    createStudent(
      firstName: $firstName
      lastName: $lastName
      gender: $gender
      dateOfBirth: $dateOfBirth
      mobileNumber: $mobileNumber
      address: $address
      class: $class
      section: $section
      rollNumber: $rollNumber
      admissionDate: $admissionDate
      status: $status
    ) {` + studentFields + `
    }
  }
`

const updateStudentMutation = `
  mutation UpdateStudent(
    $studentId: Int!
    $firstName: String!
    $lastName: String!
    $gender: String!
    $dateOfBirth: String!
    $mobileNumber: String!
    $address: String!
    $class: String!
    $section: String!
    $rollNumber: String!
    $admissionDate: String!
    $status: String!
  ) {
    updateStudent(
      studentId: $studentId
      firstName: $firstName
      lastName: $lastName
      gender: $gender
      dateOfBirth: $dateOfBirth
      mobileNumber: $mobileNumber
      address: $address
      class: $class
      section: $section
      rollNumber: $rollNumber
      admissionDate: $admissionDate
      status: $status
    ) {` + studentFields + `
    }
  }
`

const loginMutation = `
  mutation Login($email: String!, $password: String!) {
    login(email: $email, password: $password) {
      token
      user {
        id
        email
        role
      }
    }
  }
`

const signupMutation = `
  mutation Signup($email: String!, $password: String!, $name: String!, $role: Role!) {
    signup(email: $email, password: $password, name: $name, role: $role) {
      token
      user {
        id
        name
        email
        role
      }
    }
  }
`

const logoutMutation = `mutation { logout }`
